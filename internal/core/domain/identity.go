package domain

const (
	UserTypeSupplier = "supplier"
	UserTypeRetailer = "retailer"
)

// Identity is the authenticated user's business record as served by the
// remote khata API. Only the credential persists across restarts; the
// identity itself is always re-fetched.
type Identity struct {
	ID           int    `json:"id"`
	BusinessName string `json:"business_name"`
	UserType     string `json:"user_type"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	GSTNumber    string `json:"gst_number,omitempty"`
	Email        string `json:"email,omitempty"`
}

// IsRetailer reports whether the identity belongs to a retailer account.
func (i *Identity) IsRetailer() bool {
	return i.UserType == UserTypeRetailer
}

// RegistrationData carries the sign-up form as collected from the operator.
// UserType uses the form-level SUPPLIER/RETAILER spelling; the gateway lowers
// it on the wire. The retailer-only fields are ignored for suppliers.
type RegistrationData struct {
	BusinessName string
	Email        string
	Phone        string
	GSTNumber    string
	Password     string
	UserType     string // SUPPLIER or RETAILER
	Address      string

	// Retailer-only credit-assessment fields.
	PANNumber       string
	AnnualTurnover  float64
	YearsInBusiness int
	BusinessType    string
	ShopOwnership   string // owned or rented
	HasBankAccount  bool
}

// ProfileUpdate holds the mutable subset of the identity record.
type ProfileUpdate struct {
	BusinessName string `json:"business_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
}
