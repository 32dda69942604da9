package hrapi

import (
	"fmt"
	"net/http"

	"github.com/Amund211/rollcall/internal/domain"
)

type companyWire struct {
	ID         string `json:"id"`
	AdminName  string `json:"adminName"`
	AdminEmail string `json:"adminEmail"`
}

// DecodeLogin turns a login response into the session it opens
func DecodeLogin(body []byte) (domain.AuthState, error) {
	envelope, err := DecodeEnvelope(body)
	if err != nil {
		return domain.AuthState{}, fmt.Errorf("%w: %w", domain.ErrLoginFailed, err)
	}
	if envelope.Status != http.StatusOK || !envelope.HasData() {
		return domain.AuthState{}, fmt.Errorf("%w: %s", domain.ErrLoginFailed, envelope.Message)
	}

	var company companyWire
	if err := decodeData(body, &company); err != nil {
		return domain.AuthState{}, fmt.Errorf("%w: %w", domain.ErrLoginFailed, err)
	}
	if company.ID == "" {
		return domain.AuthState{}, fmt.Errorf("%w: %w", domain.ErrLoginFailed, domain.ErrMissingCompanyID)
	}

	username := company.AdminName
	if username == "" {
		username = company.AdminEmail
	}
	if username == "" {
		username = "User"
	}

	return domain.AuthState{
		IsLoggedIn: true,
		Username:   username,
		Email:      company.AdminEmail,
		CompanyID:  company.ID,
	}, nil
}

type NewCompanyRequest struct {
	CompanyName string `json:"companyName"`
	CompanySize string `json:"companySize"`
	AdminName   string `json:"adminName"`
	AdminEmail  string `json:"adminEmail"`
	Password    string `json:"password"`
}

func NewCompanyRequestFrom(company domain.NewCompany) NewCompanyRequest {
	return NewCompanyRequest(company)
}
