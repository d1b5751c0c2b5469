package config

import "time"

// Credentials is an email/password pair used to sign in through the UI or API
type Credentials struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Fixtures is the registry of test inputs shared by every scenario
type Fixtures struct {
	ValidUser     Credentials     `yaml:"validUser"`
	InvalidUser   Credentials     `yaml:"invalidUser"`
	NewUser       NewUserFixtures `yaml:"newUser"`
	Products      ProductFixtures `yaml:"products"`
	Pages         PagePaths       `yaml:"pages"`
	Messages      Messages        `yaml:"messages"`
	Cart          CartFixtures    `yaml:"cart"`
	Checkout      CheckoutFixture `yaml:"checkout"`
	Orders        OrderFixtures   `yaml:"orders"`
	Profile       ProfileFixtures `yaml:"profile"`
	UI            UIFixtures      `yaml:"ui"`
	Perf          PerfFixtures    `yaml:"perf"`
	Security      SecurityPayload `yaml:"security"`
	Accessibility Accessibility   `yaml:"accessibility"`
	API           Endpoints       `yaml:"api"`
}

// NewUserFixtures configures users generated for API chains
type NewUserFixtures struct {
	Password    string `yaml:"password"`
	EmailDomain string `yaml:"emailDomain"`
}

// ProductFixtures holds catalogue search and browse inputs
type ProductFixtures struct {
	SearchTerm  string        `yaml:"searchTerm"`
	ValidTerm   string        `yaml:"validTerm"`
	InvalidTerm string        `yaml:"invalidTerm"`
	BlankTerm   string        `yaml:"blankTerm"`
	Categories  []string      `yaml:"categories"`
	Filters     FilterFixture `yaml:"filters"`
	Sort        SortOptions   `yaml:"sort"`
	SampleID    string        `yaml:"sampleId"`
	Thumbnails  int           `yaml:"galleryThumbnails"`
	InStockID   string        `yaml:"inStockId"`
	OutOfStock  string        `yaml:"outOfStockId"`
	MinReviews  int           `yaml:"minReviews"`
}

// FilterFixture is the filter combination applied on the catalogue
type FilterFixture struct {
	PriceMin float64 `yaml:"priceMin"`
	PriceMax float64 `yaml:"priceMax"`
	Brand    string  `yaml:"brand"`
	Rating   int     `yaml:"rating"`
}

// SortOptions are the visible labels of the sort control
type SortOptions struct {
	PriceLowToHigh string `yaml:"priceLowToHigh"`
	PriceHighToLow string `yaml:"priceHighToLow"`
	Newest         string `yaml:"newest"`
	Rating         string `yaml:"rating"`
}

// PagePaths are application routes relative to the base URL
type PagePaths struct {
	Home           string `yaml:"home"`
	Login          string `yaml:"login"`
	SignIn         string `yaml:"signin"`
	Register       string `yaml:"register"`
	ForgotPassword string `yaml:"forgotPassword"`
	Search         string `yaml:"search"`
	Category       string `yaml:"category"`
	Product        string `yaml:"product"`
	Cart           string `yaml:"cart"`
	Checkout       string `yaml:"checkout"`
	Profile        string `yaml:"profile"`
	Orders         string `yaml:"orders"`
}

// Messages are user-facing texts matched case-insensitively
type Messages struct {
	InvalidLogin     string `yaml:"invalidLogin"`
	RequiredField    string `yaml:"requiredField"`
	ResetEmailSent   string `yaml:"resetEmailSent"`
	Welcome          string `yaml:"welcome"`
	NoProductsFound  string `yaml:"noProductsFound"`
	EnterKeyword     string `yaml:"enterKeyword"`
	OutOfStock       string `yaml:"outOfStock"`
	ItemRemoved      string `yaml:"itemRemoved"`
	CartEmpty        string `yaml:"cartEmpty"`
	OrderPlaced      string `yaml:"orderPlaced"`
	PromoApplied     string `yaml:"promoApplied"`
	InvalidPromo     string `yaml:"invalidPromo"`
	ValidationErrors string `yaml:"validationErrors"`
}

// CartFixtures controls cart scenarios
type CartFixtures struct {
	DefaultQty             int  `yaml:"defaultQty"`
	PersistBetweenSessions bool `yaml:"persistBetweenSessions"`
}

// Address is a shipping address as typed into the checkout form
type Address struct {
	FullName   string `yaml:"fullName" json:"fullName"`
	Address    string `yaml:"address" json:"address"`
	City       string `yaml:"city" json:"city"`
	PostalCode string `yaml:"postalCode" json:"postalCode"`
	Country    string `yaml:"country" json:"country"`
	Phone      string `yaml:"phone" json:"phone,omitempty"`
}

// Card is a payment card payload
type Card struct {
	Number string `yaml:"cardNumber" json:"cardNumber"`
	Expiry string `yaml:"expiry" json:"expiry"`
	CVV    string `yaml:"cvv" json:"cvv"`
	Name   string `yaml:"name" json:"name"`
}

// CheckoutFixture holds shipping, payment and promo inputs
type CheckoutFixture struct {
	ValidAddress   Address `yaml:"validAddress"`
	MissingAddress Address `yaml:"missingAddress"`
	DeliveryOption string  `yaml:"deliveryOption"`
	PaymentMethod  string  `yaml:"paymentMethod"`
	ValidCard      Card    `yaml:"validCard"`
	InvalidCard    Card    `yaml:"invalidCard"`
	PromoValid     string  `yaml:"promoValid"`
	PromoInvalid   string  `yaml:"promoInvalid"`
	TaxRate        float64 `yaml:"taxRate"`
}

// OrderFixtures references existing orders
type OrderFixtures struct {
	ExistingOrderID string `yaml:"existingOrderId"`
}

// ProfileEdits are the values written by the edit-profile scenario
type ProfileEdits struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
}

// ProfileFixtures holds profile edit and password change inputs
type ProfileFixtures struct {
	Edits           ProfileEdits `yaml:"edits"`
	CurrentPassword string       `yaml:"currentPassword"`
	NextPassword    string       `yaml:"nextPassword"`
}

// Viewport is a browser window size in CSS pixels
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// UIFixtures holds layout inputs
type UIFixtures struct {
	Mobile  Viewport `yaml:"mobile"`
	Desktop Viewport `yaml:"desktop"`
}

// PerfFixtures holds performance thresholds
type PerfFixtures struct {
	PageLoadThreshold time.Duration `yaml:"pageLoadThreshold"`
	APIThreshold      time.Duration `yaml:"apiThreshold"`
}

// SecurityPayload holds injection probes typed into inputs
type SecurityPayload struct {
	XSS string `yaml:"xss"`
	SQL string `yaml:"sql"`
}

// Accessibility controls the basic accessibility checks
type Accessibility struct {
	RequireAltText     bool     `yaml:"requireAltText"`
	KeyboardNavigation bool     `yaml:"keyboardNavigation"`
	TabStops           int      `yaml:"tabStops"`
	Roles              []string `yaml:"roles"`
}

// Endpoints are REST paths relative to the base URL
type Endpoints struct {
	Products       string `yaml:"products"`
	Users          string `yaml:"users"`
	Signup         string `yaml:"signup"`
	Login          string `yaml:"login"`
	Logout         string `yaml:"logout"`
	ForgotPassword string `yaml:"forgotPassword"`
	Search         string `yaml:"search"`
	Categories     string `yaml:"categories"`
	Cart           string `yaml:"cart"`
	Orders         string `yaml:"orders"`
	Checkout       string `yaml:"checkout"`
	Payments       string `yaml:"payments"`
	Promos         string `yaml:"promos"`
	Reviews        string `yaml:"reviews"`
}

func defaultFixtures() Fixtures {
	return Fixtures{
		ValidUser:   Credentials{Email: "test@example.com", Password: "Password123"},
		InvalidUser: Credentials{Email: "invalid@example.com", Password: "WrongPassword!"},
		NewUser:     NewUserFixtures{Password: "Password123", EmailDomain: "example.com"},
		Products: ProductFixtures{
			SearchTerm:  "Laptop",
			ValidTerm:   "Laptop",
			InvalidTerm: "asdfghjklqwerty",
			BlankTerm:   "",
			Categories:  []string{"Electronics", "Books", "Fashion"},
			Filters:     FilterFixture{PriceMin: 100, PriceMax: 1000, Brand: "Dell", Rating: 4},
			Sort: SortOptions{
				PriceLowToHigh: "Price: Low to High",
				PriceHighToLow: "Price: High to Low",
				Newest:         "Newest Arrivals",
				Rating:         "Avg. Customer Review",
			},
			SampleID:   "prod-001",
			Thumbnails: 3,
			InStockID:  "prod-instock-001",
			OutOfStock: "prod-outofstock-001",
			MinReviews: 1,
		},
		Pages: PagePaths{
			Home:           "/",
			Login:          "/login",
			SignIn:         "/signin",
			Register:       "/register",
			ForgotPassword: "/forgot-password",
			Search:         "/search",
			Category:       "/category",
			Product:        "/product",
			Cart:           "/cart",
			Checkout:       "/checkout",
			Profile:        "/profile",
			Orders:         "/orders",
		},
		Messages: Messages{
			InvalidLogin:     "Invalid username or password",
			RequiredField:    "This field is required",
			ResetEmailSent:   "Email with reset link is sent",
			Welcome:          "Welcome",
			NoProductsFound:  "No products found",
			EnterKeyword:     "Please enter a search keyword",
			OutOfStock:       "Out of stock",
			ItemRemoved:      "Item removed from cart",
			CartEmpty:        "Your cart is empty",
			OrderPlaced:      "Order placed successfully",
			PromoApplied:     "Discount applied",
			InvalidPromo:     "Invalid promo code",
			ValidationErrors: "Please fix validation errors",
		},
		Cart: CartFixtures{DefaultQty: 1, PersistBetweenSessions: true},
		Checkout: CheckoutFixture{
			ValidAddress: Address{
				FullName:   "Test User",
				Address:    "123 Test St",
				City:       "Testville",
				PostalCode: "12345",
				Country:    "USA",
				Phone:      "+1-555-0100",
			},
			MissingAddress: Address{City: "Testville", Country: "USA"},
			DeliveryOption: "Standard",
			PaymentMethod:  "PayPal",
			ValidCard:      Card{Number: "4111111111111111", Expiry: "12/30", CVV: "123", Name: "TEST USER"},
			InvalidCard:    Card{Number: "4000000000000002", Expiry: "01/20", CVV: "000", Name: "TEST USER"},
			PromoValid:     "SAVE10",
			PromoInvalid:   "INVALIDCODE",
			TaxRate:        0.1,
		},
		Orders: OrderFixtures{ExistingOrderID: "order-1001"},
		Profile: ProfileFixtures{
			Edits:           ProfileEdits{Name: "Updated User", Address: "456 Updated Ave", Phone: "+1-555-0111"},
			CurrentPassword: "Password123",
			NextPassword:    "NewPassword#123",
		},
		UI: UIFixtures{
			Mobile:  Viewport{Width: 375, Height: 812},
			Desktop: Viewport{Width: 1440, Height: 900},
		},
		Perf: PerfFixtures{PageLoadThreshold: 3 * time.Second, APIThreshold: time.Second},
		Security: SecurityPayload{
			XSS: "<script>alert(1)</script>",
			SQL: "' OR 1=1; --",
		},
		Accessibility: Accessibility{
			RequireAltText:     true,
			KeyboardNavigation: true,
			TabStops:           5,
			Roles:              []string{"button", "link", "textbox", "combobox", "img"},
		},
		API: Endpoints{
			Products:       "/api/products",
			Users:          "/api/users",
			Signup:         "/api/users/signup",
			Login:          "/api/users/login",
			Logout:         "/api/users/logout",
			ForgotPassword: "/api/users/forgot-password",
			Search:         "/api/products/search",
			Categories:     "/api/categories",
			Cart:           "/api/cart",
			Orders:         "/api/orders",
			Checkout:       "/api/checkout",
			Payments:       "/api/payments",
			Promos:         "/api/promos",
			Reviews:        "/api/reviews",
		},
	}
}
