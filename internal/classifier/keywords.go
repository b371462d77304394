package classifier

import "github.com/PDHeisenberg/cardwise/internal/models"

// CategoryKeywords binds one spending category to its keyword list
type CategoryKeywords struct {
	Category models.SpendingCategory
	Keywords []string
}

// KeywordTable is an ordered list of category keyword sets. The order is
// load-bearing: equal-length keyword matches are broken by table position,
// so the table must stay an ordered slice rather than a map.
type KeywordTable []CategoryKeywords

// DefaultTable returns the built-in Singapore-focused keyword table
func DefaultTable() KeywordTable {
	return KeywordTable{
		{models.CategoryDining, []string{
			// Restaurant chains
			"din tai fung", "crystal jade", "paradise group", "imperial treasure",
			"hai di lao", "haidilao", "swee choon", "jumbo seafood", "song fa",
			"tim ho wan", "putien", "burnt ends", "jaan", "luke's oyster",
			"ps cafe", "common man coffee", "ya kun", "toast box", "kopitiam",
			"koufu", "foodfare", "food republic", "food court",
			// Fast food
			"mcdonald", "mcdonalds", "mcd", "burger king", "kfc",
			"popeyes", "subway", "jollibee", "mos burger", "shake shack",
			"five guys", "wendy", "texas chicken", "long john silver",
			"pizza hut", "domino", "dominos",
			// Cafes and bakeries
			"starbucks", "coffee bean", "costa coffee", "nana's green tea",
			"cedele", "breadtalk", "bread talk", "delifrance", "paul bakery",
			"tiong bahru bakery", "bacha coffee", "% arabica",
			// Food delivery
			"foodpanda", "food panda", "deliveroo", "grabfood", "grab food",
			// General dining keywords
			"restaurant", "cafe", "bistro", "grill", "kitchen", "eatery",
			"dining", "bakery", "bar", "pub", "hawker", "food", "dim sum",
			"sushi", "ramen", "noodle", "rice", "chicken", "fish",
			"prata", "murtabak", "nasi", "mee", "laksa", "satay",
			"bak kut teh", "char kway teow", "hokkien mee", "cai png",
			"wonton", "seafood", "steamboat", "hotpot", "bbq", "yakiniku",
			"izakaya", "teppanyaki", "korean bbq",
		}},
		{models.CategoryGroceries, []string{
			// Supermarkets
			"fairprice", "fair price", "ntuc", "cold storage", "giant",
			"sheng siong", "don don donki", "donki", "don quijote",
			"redmart", "amazon fresh", "market place", "marketplace",
			"prime supermarket", "hao mart", "scarlett supermarket",
			"meidi-ya", "meidi ya", "isetan supermarket",
			// Online groceries
			"honestbee", "pandamart", "grab mart", "grabmart",
			// General
			"supermarket", "grocer", "market", "provision",
		}},
		{models.CategoryTransport, []string{
			// Ride hailing
			"grab", "gojek", "go-jek", "tada", "ryde", "comfortdelgro",
			"comfort delgro", "cdg zig",
			// Public transport
			"simplygo", "simply go", "ez-link", "ezlink", "ez link",
			"transitlink", "transit link", "smrt", "sbs transit",
			"sbstransit", "bus", "mrt", "lrt",
			// Private hire
			"taxi", "cab",
		}},
		{models.CategoryTravel, []string{
			// Airlines
			"singapore airlines", "sia", "scoot", "jetstar",
			"airasia", "air asia", "cathay", "thai airways",
			"emirates", "qatar airways", "british airways",
			"klm", "lufthansa", "eva air",
			// Hotels
			"marriott", "hilton", "hyatt", "shangri-la", "shangri la",
			"mandarin oriental", "ritz carlton", "fairmont", "swissotel",
			"intercontinental", "holiday inn", "crowne plaza",
			"pan pacific", "capella", "fullerton",
			"hotel", "resort", "hostel",
			// Travel booking
			"agoda", "booking.com", "booking com", "expedia",
			"trip.com", "tripadvisor", "klook", "traveloka",
			"skyscanner", "krisshop", "kris shop",
			// Airport
			"changi", "airport", "duty free", "dfs",
			"airlines", "airline", "airways",
		}},
		{models.CategoryOnlineShopping, []string{
			// E-commerce
			"shopee", "lazada", "amazon", "qoo10", "carousell",
			"taobao", "aliexpress", "shein", "temu", "zalora",
			"asos", "love bonito", "pomelo", "charles & keith",
			// Tech
			"apple.com", "apple store", "google play", "app store",
			// Digital subscriptions
			"spotify", "netflix", "disney+", "disney plus",
			"youtube premium", "hbo", "amazon prime",
			"apple music", "apple tv", "playstation", "nintendo",
			"steam", "twitch",
			// General
			"online", ".com", ".sg", "ecommerce",
		}},
		{models.CategoryEntertainment, []string{
			// Cinema
			"golden village", "gv", "shaw theatres", "cathay cineplexes",
			"filmgarde", "the projector", "imax",
			// Attractions
			"universal studios", "uss", "sentosa", "marina bay sands",
			"mbs", "gardens by the bay", "zoo", "bird paradise",
			"night safari", "river wonders", "science centre",
			"artscience", "national gallery",
			// Events
			"sistic", "ticketmaster", "eventbrite", "peatix",
			"concert", "theatre", "theater", "show",
			// Leisure
			"karaoke", "ktv", "bowling", "arcade",
			"cinema", "movie", "museum", "gallery",
		}},
		{models.CategoryFuel, []string{
			"shell", "esso", "caltex", "sinopec", "spc",
			"petrol", "petroleum", "gas station", "fuel",
			"ev charging", "charge+", "bluesg", "blue sg",
			"sp mobility",
		}},
		{models.CategoryUtilities, []string{
			"sp group", "sp services", "singapore power",
			"geneco", "ohm", "tuas power", "senoko",
			"keppel electric", "pacific light", "union power",
			"starhub", "singtel", "m1", "circles.life",
			"giga", "simonly", "tpg",
			"electricity", "utilities", "power supply",
			"water bill", "conservancy", "town council",
		}},
		{models.CategoryInsurance, []string{
			"prudential", "aia", "great eastern", "ntuc income",
			"singlife", "manulife", "aviva", "axa",
			"tokio marine", "msig", "sompo", "chubb",
			"zurich", "allianz", "fwd",
			"insurance", "premium",
		}},
		{models.CategoryHealthcare, []string{
			"raffles medical", "raffles hospital", "mount elizabeth",
			"mt elizabeth", "gleneagles", "parkway", "thomson medical",
			"national university hospital", "nuh", "sgh",
			"singapore general hospital", "tan tock seng", "ttsh",
			"changi general", "cgh", "khoo teck puat",
			"guardian", "watsons", "unity pharmacy",
			"hospital", "clinic", "medical", "dental", "doctor",
			"pharmacy", "health", "polyclinic",
		}},
		{models.CategoryEducation, []string{
			"nus", "ntu", "smu", "sutd", "sit",
			"national university", "nanyang technological",
			"polytechnic", "ite", "tuition", "enrichment",
			"school", "university", "college", "academy",
			"course", "training", "education",
			"udemy", "coursera", "skillsfuture",
		}},
		{models.CategoryDepartmentStore, []string{
			"takashimaya", "isetan", "tangs", "tang",
			"robinsons", "metro", "marks & spencer", "m&s",
			"ion orchard", "paragon", "vivocity",
			"department store", "uniqlo", "zara", "h&m",
			"cotton on", "mango",
		}},
	}
}
