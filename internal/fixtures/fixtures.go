package fixtures

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"triton-system/internal/database/models"
)

// Options sets how many rows each randomized fixture gets. Fixtures whose
// rows are a fixed reference table (traffic sources, sales cities, activity
// months) are not parameterized.
type Options struct {
	NewUsers      int
	ActiveAuthors int
	Designations  int
}

func DefaultOptions() Options {
	return Options{
		NewUsers:      8,
		ActiveAuthors: 4,
		Designations:  4,
	}
}

var (
	widgetRoles = []string{"HR Manager", "Developer", "Designer", "Sales", "QA Lead", "Product Owner"}
	emojis      = []string{"👩", "👨", "🧔", "👩‍🦰", "👨‍🦱", "🧑‍💻"}
	firstNames  = []string{"Alice", "Bob", "Charlie", "Diana", "Evan", "Fatima", "Grace", "Hiro", "Ines", "Jonas"}
	lastNames   = []string{"Martin", "Dawson", "Khan", "Petrova", "Silva", "Okafor", "Larsen", "Ito", "Moreau", "Weber"}

	authorRoles = []string{"Editor", "Author", "Reviewer", "Writer"}

	designationTitles    = []string{"Senior Director", "Product Owner", "QA Lead", "Compliance", "Staff Engineer", "Office Manager"}
	designationCompanies = []string{"Triton Tech", "Optitax Inc", "Global Services", "Finance Corp"}
	designationColors    = []string{"#3e97ff", "#ffc700", "#f1416c", "#50cd89"}

	activityMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep"}
)

func randomName(rng *rand.Rand) string {
	return firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
}

// Load truncates and repopulates the dashboard widget tables.
func Load(db *gorm.DB, opts Options) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if err := seedTrafficSources(db, rng); err != nil {
		return fmt.Errorf("traffic sources: %w", err)
	}
	if err := seedNewUsers(db, rng, opts.NewUsers); err != nil {
		return fmt.Errorf("new users: %w", err)
	}
	if err := seedSalesDistribution(db, rng); err != nil {
		return fmt.Errorf("sales distribution: %w", err)
	}
	if err := seedProject(db, rng); err != nil {
		return fmt.Errorf("project: %w", err)
	}
	if err := seedActiveAuthors(db, rng, opts.ActiveAuthors); err != nil {
		return fmt.Errorf("active authors: %w", err)
	}
	if err := seedDesignations(db, rng, opts.Designations); err != nil {
		return fmt.Errorf("designations: %w", err)
	}
	if err := seedUserActivity(db, rng); err != nil {
		return fmt.Errorf("user activity: %w", err)
	}
	return nil
}

func seedTrafficSources(db *gorm.DB, rng *rand.Rand) error {
	if err := db.Where("1 = 1").Delete(&models.TrafficSource{}).Error; err != nil {
		return err
	}
	sources := []models.TrafficSource{
		{Name: "Search", Visitors: 800 + rng.Intn(700)},
		{Name: "Direct", Visitors: 300 + rng.Intn(500)},
		{Name: "Social", Visitors: 200 + rng.Intn(400)},
		{Name: "Referral", Visitors: 100 + rng.Intn(300)},
		{Name: "Email", Visitors: 50 + rng.Intn(250)},
	}
	return db.Create(&sources).Error
}

func seedNewUsers(db *gorm.DB, rng *rand.Rand, n int) error {
	if err := db.Where("1 = 1").Delete(&models.NewUser{}).Error; err != nil {
		return err
	}
	users := make([]models.NewUser, n)
	for i := range users {
		users[i] = models.NewUser{
			Name:      randomName(rng),
			Role:      widgetRoles[rng.Intn(len(widgetRoles))],
			TimeAdded: time.Now().Add(-time.Duration(rng.Intn(7*24*60)) * time.Minute),
			Emoji:     emojis[rng.Intn(len(emojis))],
		}
	}
	return db.Create(&users).Error
}

func seedSalesDistribution(db *gorm.DB, rng *rand.Rand) error {
	if err := db.Where("1 = 1").Delete(&models.SalesDistribution{}).Error; err != nil {
		return err
	}
	cities := []string{"NYC", "LDN", "PAR", "TOK", "BER"}
	rows := make([]models.SalesDistribution, len(cities))
	for i, city := range cities {
		rows[i] = models.SalesDistribution{City: city, Sales: 1500 + rng.Intn(8500)}
	}
	return db.Create(&rows).Error
}

func seedProject(db *gorm.DB, rng *rand.Rand) error {
	if err := db.Where("1 = 1").Delete(&models.ProjectTask{}).Error; err != nil {
		return err
	}
	if err := db.Where("1 = 1").Delete(&models.Project{}).Error; err != nil {
		return err
	}
	project := models.Project{
		Name:     "Triton Dashboard",
		Progress: 60 + rng.Intn(30),
		DueDays:  3 + rng.Intn(7),
	}
	if err := db.Create(&project).Error; err != nil {
		return err
	}
	tasks := []models.ProjectTask{
		{ProjectID: project.ID, Name: "Design Phase", Icon: "🎨", Status: "Done"},
		{ProjectID: project.ID, Name: "Development", Icon: "💻", Status: "In Progress"},
		{ProjectID: project.ID, Name: "Testing", Icon: "🧪", Status: "Pending"},
	}
	return db.Create(&tasks).Error
}

func seedActiveAuthors(db *gorm.DB, rng *rand.Rand, n int) error {
	if err := db.Where("1 = 1").Delete(&models.ActiveAuthor{}).Error; err != nil {
		return err
	}
	trends := []string{"up", "down"}
	authors := make([]models.ActiveAuthor, n)
	for i := range authors {
		authors[i] = models.ActiveAuthor{
			Name:     randomName(rng),
			Role:     authorRoles[i%len(authorRoles)],
			Progress: 70 + rng.Intn(29),
			Trend:    trends[rng.Intn(len(trends))],
		}
	}
	return db.Create(&authors).Error
}

func seedDesignations(db *gorm.DB, rng *rand.Rand, n int) error {
	if err := db.Where("1 = 1").Delete(&models.Designation{}).Error; err != nil {
		return err
	}
	designations := make([]models.Designation, n)
	for i := range designations {
		date := time.Now().AddDate(0, 0, -rng.Intn(30))
		designations[i] = models.Designation{
			Title:   designationTitles[i%len(designationTitles)],
			Company: designationCompanies[rng.Intn(len(designationCompanies))],
			Date:    date.Format("2006-01-02"),
			Color:   designationColors[rng.Intn(len(designationColors))],
		}
	}
	return db.Create(&designations).Error
}

func seedUserActivity(db *gorm.DB, rng *rand.Rand) error {
	if err := db.Where("1 = 1").Delete(&models.UserActivity{}).Error; err != nil {
		return err
	}
	rows := make([]models.UserActivity, len(activityMonths))
	for i, month := range activityMonths {
		rows[i] = models.UserActivity{
			Month:       month,
			ActiveUsers: 200 + rng.Intn(800),
			NewUsers:    20 + rng.Intn(180),
		}
	}
	return db.Create(&rows).Error
}

// LoadInventory generates demo jewellery, RFID tags, and random mappings.
// Duplicate pairs are skipped with a log line here; the API surfaces the
// same condition as a conflict.
func LoadInventory(db *gorm.DB, jewelleryCount, rfidCount, mappingCount int) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	metals := []string{"Gold", "Silver", "Platinum", "Rose Gold"}
	collections := []string{"Bridal", "Festive", "Daily Wear", "Heritage"}
	categories := []string{"Ring", "Necklace", "Bangle", "Earring"}

	jewellery := make([]models.Jewellery, jewelleryCount)
	for i := range jewellery {
		jewellery[i] = models.Jewellery{
			JewelleryID:    fmt.Sprintf("JW-%05d", i+1),
			DesignNumber:   fmt.Sprintf("D-%04d", rng.Intn(10000)),
			CollectionType: collections[rng.Intn(len(collections))],
			MetalType:      metals[rng.Intn(len(metals))],
			Category:       categories[rng.Intn(len(categories))],
			SubCategory:    "Classic",
			Status:         models.StatusActive,
		}
	}
	if len(jewellery) > 0 {
		if err := db.Create(&jewellery).Error; err != nil {
			return fmt.Errorf("jewellery: %w", err)
		}
	}

	tags := make([]models.RFID, rfidCount)
	for i := range tags {
		tags[i] = models.RFID{
			Tag:    fmt.Sprintf("RFID-%06d", i+1),
			Status: models.StatusActive,
		}
	}
	if len(tags) > 0 {
		if err := db.Create(&tags).Error; err != nil {
			return fmt.Errorf("rfid: %w", err)
		}
	}

	if jewelleryCount == 0 || rfidCount == 0 {
		return nil
	}

	seen := make(map[[2]int64]bool)
	created := 0
	for i := 0; i < mappingCount; i++ {
		j := jewellery[rng.Intn(len(jewellery))]
		t := tags[rng.Intn(len(tags))]
		key := [2]int64{j.ID, t.ID}
		if seen[key] {
			log.Printf("Skipping duplicate mapping %s -> %s", j.JewelleryID, t.Tag)
			continue
		}
		seen[key] = true
		mapping := models.RFIDJewelleryMap{
			JewelleryID: j.ID,
			RFIDID:      t.ID,
			Status:      models.StatusActive,
		}
		if err := db.Create(&mapping).Error; err != nil {
			return fmt.Errorf("mapping: %w", err)
		}
		created++
	}
	log.Printf("Created %d inventory mappings", created)
	return nil
}
