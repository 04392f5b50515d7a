package api

import "github.com/kisansetu/kisanctl/internal/cli/session"

// LoginResponse is returned by both login and signup.
type LoginResponse struct {
	Token string          `json:"token"`
	Admin session.Profile `json:"admin"`
}

// SignupRequest registers a new admin. SecretKey is checked server-side.
type SignupRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	SecretKey string `json:"secretKey"`
}

// DashboardStats are the aggregate counts shown on the admin dashboard.
type DashboardStats struct {
	TotalUsers            int     `json:"totalUsers"`
	Farmers               int     `json:"farmers"`
	Buyers                int     `json:"buyers"`
	Sellers               int     `json:"sellers"`
	DeliveryPartners      int     `json:"deliveryPartners"`
	PendingVerifications  int     `json:"pendingVerifications"`
	ApprovedVerifications int     `json:"approvedVerifications"`
	RejectedVerifications int     `json:"rejectedVerifications"`
	TotalOrders           int     `json:"totalOrders"`
	TotalRevenue          float64 `json:"totalRevenue"`
	TotalCrops            int     `json:"totalCrops"`
	TotalProducts         int     `json:"totalProducts"`
}

// NamedRef is a populated reference to another document (farmer, buyer, seller).
type NamedRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Production is a farmer production listing awaiting moderation.
type Production struct {
	ID                  string   `json:"_id"`
	CropType            string   `json:"cropType"`
	Quantity            float64  `json:"quantity"`
	QualityGrade        string   `json:"qualityGrade"`
	ExpectedHarvestDate string   `json:"expectedHarvestDate"`
	Description         string   `json:"description"`
	Status              string   `json:"status"`
	CreatedAt           string   `json:"createdAt"`
	Farmer              NamedRef `json:"farmerId"`
	Location            struct {
		Address string `json:"address"`
	} `json:"location"`
	Images []string `json:"images"`
}

// ProductionList is the envelope returned by the productions endpoint.
type ProductionList struct {
	Productions []Production `json:"productions"`
	Categories  []string     `json:"categories"`
	Total       int          `json:"total"`
	Pending     int          `json:"pending"`
	Approved    int          `json:"approved"`
	Rejected    int          `json:"rejected"`
}

// Partner is a delivery-partner application summary.
type Partner struct {
	ID              string `json:"_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	IsApproved      bool   `json:"isApproved"`
	ApplicationDate string `json:"applicationDate"`
	CreatedAt       string `json:"createdAt"`
}

// PartnerList is the envelope returned by the delivery-partners endpoint.
type PartnerList struct {
	Partners []Partner `json:"partners"`
}

// Vehicle describes a partner's registered delivery vehicle.
type Vehicle struct {
	Type     string `json:"type"`
	Number   string `json:"number"`
	Capacity string `json:"capacity"`
}

// ServiceArea is the region a partner delivers to.
type ServiceArea struct {
	Cities      []string `json:"cities"`
	MaxDistance int      `json:"maxDistance"`
}

// BankDetails hold a partner's payout account.
type BankDetails struct {
	AccountHolderName string `json:"accountHolderName"`
	AccountNumber     string `json:"accountNumber"`
	IFSCCode          string `json:"ifscCode"`
}

// PartnerDocuments are the uploaded verification documents.
type PartnerDocuments struct {
	DrivingLicense string `json:"drivingLicense"`
}

// PartnerDetails is the extended application record.
type PartnerDetails struct {
	Partner
	Address     string           `json:"address"`
	Vehicle     Vehicle          `json:"vehicle"`
	ServiceArea ServiceArea      `json:"serviceArea"`
	BankDetails BankDetails      `json:"bankDetails"`
	Documents   PartnerDocuments `json:"documents"`
}

type partnerDetailsResponse struct {
	Partner PartnerDetails `json:"partner"`
}

// UserStats are per-user aggregates shown in the detail view.
type UserStats struct {
	TotalOrders  int     `json:"totalOrders"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// User is a marketplace account (farmer, buyer, seller or delivery partner).
type User struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	CreatedAt string     `json:"createdAt"`
	Stats     *UserStats `json:"stats,omitempty"`
}

// UserList is the envelope returned by the users endpoint.
type UserList struct {
	Users []User `json:"users"`
}

// OrderItem is a line item within an order.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order is a marketplace order.
type Order struct {
	ID            string      `json:"_id"`
	OrderID       string      `json:"orderId"`
	Buyer         NamedRef    `json:"buyerId"`
	Seller        NamedRef    `json:"sellerId"`
	Items         []OrderItem `json:"items"`
	Total         float64     `json:"total"`
	PaymentStatus string      `json:"paymentStatus"`
	Status        string      `json:"status"`
	CreatedAt     string      `json:"createdAt"`
}

// OrderList is the envelope returned by the orders endpoint.
type OrderList struct {
	Orders []Order `json:"orders"`
}

// AnalyticsOverview are the headline platform totals.
type AnalyticsOverview struct {
	TotalUsers   int     `json:"totalUsers"`
	TotalOrders  int     `json:"totalOrders"`
	TotalRevenue float64 `json:"totalRevenue"`
	ActiveUsers  int     `json:"activeUsers"`
}

// GrowthPoint is one sample in the user growth series.
type GrowthPoint struct {
	Date  string `json:"date"`
	Users int    `json:"users"`
}

// RevenuePoint is one sample in the monthly revenue series.
type RevenuePoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// TopProduct is a best-selling product summary.
type TopProduct struct {
	Name    string  `json:"name"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// OrderStats break orders down by status.
type OrderStats struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

// Analytics holds the aggregates for the analytics screen.
type Analytics struct {
	Overview    AnalyticsOverview `json:"overview"`
	UserGrowth  []GrowthPoint     `json:"userGrowth"`
	RevenueData []RevenuePoint    `json:"revenueData"`
	TopProducts []TopProduct      `json:"topProducts"`
	OrderStats  OrderStats        `json:"orderStats"`
}

// VerifyResponse is the confirmation message for moderation actions.
type VerifyResponse struct {
	Message string `json:"message"`
}
