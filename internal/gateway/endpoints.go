package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/khatahub/khata-dashboard/internal/core/domain"
)

// searchMinLength is enforced client-side: shorter queries never reach the
// network and yield an empty result set.
const searchMinLength = 3

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerUserPayload struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

type retailerProfilePayload struct {
	PANNumber           string  `json:"pan_number"`
	AnnualTurnover      float64 `json:"annual_turnover"`
	YearsInBusiness     int     `json:"years_in_business"`
	BusinessType        string  `json:"business_type"`
	ShopOwnership       string  `json:"shop_ownership"`
	ExistingBankAccount bool    `json:"existing_bank_account"`
}

// registerPayload is the wire shape of POST /register/. RetailerProfile has
// no omitempty on purpose: suppliers must send an explicit JSON null.
type registerPayload struct {
	BusinessName    string                  `json:"business_name"`
	Phone           string                  `json:"phone"`
	GSTNumber       string                  `json:"gst_number"`
	Address         string                  `json:"address"`
	UserType        string                  `json:"user_type"`
	User            registerUserPayload     `json:"user"`
	RetailerProfile *retailerProfilePayload `json:"retailer_profile"`
}

type authEnvelope struct {
	Token string           `json:"token"`
	User  *domain.Identity `json:"user"`
}

// Health probes GET /health/. Any 2xx counts as connected.
func (c *Client) Health(ctx context.Context) error {
	return c.getJSON(ctx, "health", "/health/", nil)
}

// PrimeCSRF asks the remote service to set its CSRF cookie so that later
// mutating requests can echo it back as a header. Best-effort.
func (c *Client) PrimeCSRF(ctx context.Context) error {
	return c.getJSON(ctx, "csrf", "/csrf/", nil)
}

// Login exchanges credentials for a bearer token and the caller's identity.
func (c *Client) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	var env authEnvelope
	err := c.postJSON(ctx, "login", "/login/", loginPayload{Email: email, Password: password}, &env)
	if err != nil {
		return "", nil, err
	}
	return env.Token, env.User, nil
}

// Register shapes the sign-up form into the wire payload and submits it.
// The retailer sub-record is attached only for retailer registrations.
func (c *Client) Register(ctx context.Context, data domain.RegistrationData) (string, *domain.Identity, error) {
	payload := registerPayload{
		BusinessName: data.BusinessName,
		Phone:        data.Phone,
		GSTNumber:    data.GSTNumber,
		Address:      data.Address,
		UserType:     strings.ToLower(data.UserType),
		User: registerUserPayload{
			Email:     data.Email,
			Password:  data.Password,
			Username:  data.Email,
			FirstName: data.BusinessName,
		},
	}
	if strings.EqualFold(data.UserType, domain.UserTypeRetailer) {
		payload.RetailerProfile = &retailerProfilePayload{
			PANNumber:           data.PANNumber,
			AnnualTurnover:      data.AnnualTurnover,
			YearsInBusiness:     data.YearsInBusiness,
			BusinessType:        data.BusinessType,
			ShopOwnership:       data.ShopOwnership,
			ExistingBankAccount: data.HasBankAccount,
		}
	}

	var env authEnvelope
	if err := c.postJSON(ctx, "register", "/register/", payload, &env); err != nil {
		return "", nil, err
	}
	return env.Token, env.User, nil
}

// Logout invalidates the server-side session. Callers ignore failures.
func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "logout", "/logout/", nil, nil)
}

// Profile fetches the identity backing the stored credential.
func (c *Client) Profile(ctx context.Context) (*domain.Identity, error) {
	var ident domain.Identity
	if err := c.getJSON(ctx, "profile", "/profile/", &ident); err != nil {
		return nil, err
	}
	return &ident, nil
}

// UpdateProfile replaces the mutable identity fields.
func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Identity, error) {
	var ident domain.Identity
	if err := c.putJSON(ctx, "profile_update", "/profile/", update, &ident); err != nil {
		return nil, err
	}
	return &ident, nil
}

// SearchRetailers looks up retailers by business name or phone. Queries
// shorter than three characters short-circuit locally with no network call.
func (c *Client) SearchRetailers(ctx context.Context, query string) ([]domain.Identity, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < searchMinLength {
		return []domain.Identity{}, nil
	}

	var results []domain.Identity
	path := "/retailers/search/?q=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, "retailer_search", path, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// GetRetailer fetches a single retailer profile by id.
func (c *Client) GetRetailer(ctx context.Context, id int) (*domain.Identity, error) {
	var ident domain.Identity
	if err := c.getJSON(ctx, "retailer_get", fmt.Sprintf("/retailers/%d/", id), &ident); err != nil {
		return nil, err
	}
	return &ident, nil
}

// ListDues returns the dues visible to the current identity: given dues for
// suppliers, received dues for retailers. The split happens server-side.
func (c *Client) ListDues(ctx context.Context) ([]domain.Due, error) {
	var dues []domain.Due
	if err := c.getJSON(ctx, "dues_list", "/dues/", &dues); err != nil {
		return nil, err
	}
	return dues, nil
}

// CreateDue records a new due. Only suppliers may create dues; the remote
// service enforces that.
func (c *Client) CreateDue(ctx context.Context, due domain.NewDue) (*domain.Due, error) {
	var created domain.Due
	if err := c.postJSON(ctx, "dues_create", "/dues/", due, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DuesSummary fetches the supplier-side aggregate.
func (c *Client) DuesSummary(ctx context.Context) (*domain.DueSummary, error) {
	var summary domain.DueSummary
	if err := c.getJSON(ctx, "dues_summary", "/dues/summary/", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListTransactions returns the credit transactions for the current identity.
func (c *Client) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := c.getJSON(ctx, "transactions_list", "/transactions/", &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// CreateTransaction records a new credit transaction.
func (c *Client) CreateTransaction(ctx context.Context, tx domain.NewTransaction) (*domain.Transaction, error) {
	var created domain.Transaction
	if err := c.postJSON(ctx, "transactions_create", "/transactions/", tx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
