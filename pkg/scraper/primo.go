package scraper

import (
	"github.com/sirupsen/logrus"
)

type primoCompany struct {
	name        string
	description string
	website     string
	sector      string
}

// primoPortfolio is the curated Primo Capital portfolio from the published
// portfolio page.
var primoPortfolio = []primoCompany{
	{"181 Travel", "A new way to craft flawless travel experiences", "https://181travel.com/", "Travel & Tourism"},
	{"Aiko", "TRL 9 Artificial Intelligence for space missions.", "https://www.aikospace.com/", "Space & Aerospace"},
	{"Apogeo Space", "Constellation of nanosatellites for IoT", "http://www.apogeo.space/#ss1", "Space & Aerospace"},
	{"Astradyne", "Deployable structures for space and Earth", "https://www.astradyne.space/", "Space & Aerospace"},
	{"Astrocast", "The most advanced global nanosatellite IoT network", "https://www.astrocast.com/", "Space & Aerospace"},
	{"Brandon Group", "Your Digital Bridge", "http://brandongroup.it/", "Technology"},
	{"Breadcrumbs.io", "The revenue accelerator", "https://breadcrumbs.io/", "MarTech"},
	{"Caracol", "Large-scale additive manufacturing", "https://caracol-am.com/", "Manufacturing"},
	{"ChAI", "Commodity Pricing Forecasting", "https://chaipredict.com/", "FinTech"},
	{"Checkmab", "Checkmate to cancer", "https://www.checkmab.eu/en/homepage/", "HealthTech"},
	{"Codemotion", "We code the future. Together", "https://codemotionworld.com", "EdTech"},
	{"Crestoptics", "fluorescence microscopy", "https://crestoptics.com/", "HealthTech"},
	{"CryptoBooks", "Accounting software solutions for digital assets", "https://www.xbooks.it/", "FinTech"},
	{"Cubbit", "Distributed, secure, encrypted cloud storage", "https://cubbit.io/", "Enterprise Software"},
	{"D-Orbit", "Space logistics and orbital transportation services", "https://www.dorbit.space/", "Space & Aerospace"},
	{"Data Masters", "La AI Academy italiana per la formazione in Intelligenza Artificiale, Machine Learning e Data Science", "https://datamasters.it/", "EdTech"},
	{"Ecosmic", "Enabling sustainable space operations", "https://www.ecosmic.space/", "Space & Aerospace"},
	{"Enterome SA", "Delivering the promise of immunotherapy", "https://www.enterome.com/", "HealthTech"},
	{"Eoliann", "We help financial institutions forecast climate risks", "https://www.eoliann.com/", "FinTech"},
	{"Event.com", "Events.com connects people with the experiences they love", "https://events.com/", "Consumer Tech"},
	{"Eventboost", "The event management software", "https://www.eventboost.com/", "Enterprise Software"},
	{"Factanza Media", "L'informazione che crea (in)dipendenza", "https://factanza.it/", "Media & Entertainment"},
	{"Inreception", "Sell and manage your rooms", "https://www.inreception.com/", "Travel & Tourism"},
	{"InstaKitchen", "Kitchen coworking for food entrepreneurs", "https://www.instakitchen.it/", "Food & Beverage"},
	{"Irreo", "Sensorless Irrigation Planner", "https://www.irreo.ai/", "AgriTech"},
	{"Italian Artisan", "Made in Italy, Made Easy", "https://italian-artisan.com/", "Retail & E-commerce"},
	{"Keyless", "Zero-Trust Passwordless Authentication", "https://keyless.io/", "Cybersecurity"},
	{"Krill Design", "Innovative biomaterial for sustainable design", "https://krilldesign.com/", "Materials & Chemistry"},
	{"Pangaea Aerospace", "systems.", "http://pangeaaerospace.com/", "Space & Aerospace"},
	{"Pedius", "The application that allows the Deaf to make phone calls without a third party intermediary", "https://www.pedius.org/it/home/", "HealthTech"},
	{"Pieffeuno", "High quality APIs to the world", "https://www.trifarma.it/", "HealthTech"},
	{"Qomodo", "Il futuro dei pagamenti nel settore delle riparazioni auto e delle spese impreviste.", "https://www.qomodo.me/", "FinTech"},
	{"Quicare", "Healthcare made easy", "https://quicare.com/", "HealthTech"},
	{"RarEarth", "Production of sustainable magnets made from recycled materials", "https://www.rarearth.it/", "Materials & Chemistry"},
	{"Revolv Space", "Redefining small satellite capabilities through reliable and affordable space power systems", "https://www.revolvspace.com/home", "Space & Aerospace"},
	{"SardexPay", "Circuito di credito commerciale", "https://www.sardexpay.net/", "FinTech"},
	{"Servitly", "Creating value through Connected Services for equipment manufacturers", "https://www.servitly.com/it/", "Enterprise Software"},
	{"Shop Circle", "The first operator of e-commerce software", "https://shopcircle.co/", "Retail & E-commerce"},
	{"Sidereus", "Expanding the boundaries of civilization", "https://www.sidereus.space/", "Space & Aerospace"},
	{"Sift", "The leaders in digital trust & safety", "http://sift.com/", "Cybersecurity"},
	{"Silk Biomaterials", "Silk innovation for life sciences", "https://www.klis.bio/", "HealthTech"},
	{"Startupitalia", "Il magazine dell'innovazione e delle startup italiane", "https://startupitalia.eu/", "Media & Entertainment"},
	{"Stellar", "Perfect Internet on the Move", "https://www.stellar.tc/", "Telecommunications"},
	{"Transactionale", "Il tuo prossimo cliente è qui", "https://www.transactionale.com/it", "MarTech"},
	{"Vection Technologies", "Real-time technologies for industrial companies' digital transformation.", "https://www.vection.com.au/", "Enterprise Software"},
	{"Wise", "euromonitoring and neuromodulation to advance the treatment of acute and chronic indications", "https://wiseneuro.com/", "HealthTech"},
	{"WithLess", "Stop paying for software you don't use", "https://www.withless.com/", "Enterprise Software"},
	{"WordLift", "The Artificial Intelligence you need to grow your audience", "https://wordlift.io/", "AI & Machine Learning"},
	{"YOLO", "On-demand insurance", "https://yolo-insurance.com/", "InsurTech"},
}

// PrimoScraper emits the Primo Capital growth portfolio as startup records
// plus the fund's investment relationships.
type PrimoScraper struct {
	log *logrus.Logger
}

func NewPrimoScraper(log *logrus.Logger) *PrimoScraper {
	if log == nil {
		log = logrus.New()
	}
	return &PrimoScraper{log: log}
}

// Scrape folds the portfolio into acc.
func (s *PrimoScraper) Scrape(acc *Accumulator) error {
	s.log.WithField("companies", len(primoPortfolio)).Info("processing Primo Capital portfolio")
	for _, c := range primoPortfolio {
		acc.AddStartup(Record{
			"name":           c.name,
			"description":    c.description,
			"website":        c.website,
			"stage":          "Growth",
			"sector":         c.sector,
			"business_model": BusinessModelFromDescription(c.description, c.sector),
			"headquarters":   HeadquartersFromWebsite(c.website),
			"status":         "active",
		})
		acc.AddInvestment(Record{
			"investor_name":    "Primo Capital",
			"investor_type":    "VC_Firm",
			"startup_name":     c.name,
			"round_stage":      "Growth",
			"is_lead_investor": "true",
		})
	}
	return nil
}
