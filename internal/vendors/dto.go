package vendors

import "time"

// VendorResponse is the outward-facing representation of a vendor.
type VendorResponse struct {
	VendorID        string     `json:"vendorId"`
	Name            string     `json:"name"`
	Website         string     `json:"website,omitempty"`
	Description     string     `json:"description,omitempty"`
	Criticality     string     `json:"criticality"`
	Spend           float64    `json:"spend"`
	DataSensitivity string     `json:"dataSensitivity"`
	RiskScore       *int       `json:"riskScore,omitempty"`
	RiskLevel       string     `json:"riskLevel,omitempty"`
	LastAssessed    *time.Time `json:"lastAssessed,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func toResponse(vendor Vendor) VendorResponse {
	return VendorResponse{
		VendorID:        vendor.ID,
		Name:            vendor.Name,
		Website:         vendor.Website,
		Description:     vendor.Description,
		Criticality:     vendor.Criticality,
		Spend:           vendor.Spend,
		DataSensitivity: vendor.DataSensitivity,
		RiskScore:       vendor.RiskScore,
		RiskLevel:       vendor.RiskLevel,
		LastAssessed:    vendor.LastAssessed,
		CreatedAt:       vendor.CreatedAt,
	}
}
