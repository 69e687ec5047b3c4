package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/grovesmith/backend/internal/models"
	"github.com/grovesmith/backend/internal/theme"
	"github.com/grovesmith/backend/internal/trophy"
	"github.com/shopspring/decimal"
)

type RecipientEditable struct {
	Name            string          `json:"name" example:"Sam"`                                                                                            // Name of the recipient
	AllowanceAmount decimal.Decimal `json:"allowanceAmount" example:"10" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"` // Weekly allowance
	AvatarURL       string          `json:"avatarUrl" example:"https://example.com/avatars/sam.png" default:""`                                            // URL of the avatar image. Empty to remove it
}

// create returns the model input for the editable fields
func (editable RecipientEditable) create() models.RecipientCreate {
	return models.RecipientCreate{
		Name:            editable.Name,
		AllowanceAmount: editable.AllowanceAmount,
		AvatarURL:       editable.AvatarURL,
	}
}

type RecipientLinks struct {
	Self          string `json:"self" example:"https://example.com/api/v1/recipients/3b1ea324-d438-4419-882a-2fc91d71772f"`                            // The recipient itself
	Undistributed string `json:"undistributed" example:"https://example.com/api/v1/recipients/3b1ea324-d438-4419-882a-2fc91d71772f/undistributed"`     // Undistributed allowance
	Distributions string `json:"distributions" example:"https://example.com/api/v1/recipients/3b1ea324-d438-4419-882a-2fc91d71772f/distributions"`     // Distribution history
	Transactions  string `json:"transactions" example:"https://example.com/api/v1/recipients/3b1ea324-d438-4419-882a-2fc91d71772f/transactions"`       // Transaction history
	Give          string `json:"give" example:"https://example.com/api/v1/recipients/3b1ea324-d438-4419-882a-2fc91d71772f/give"`                       // Give balance and causes
	Causes        string `json:"causes" example:"https://example.com/api/v1/recipients/3b1ea324-d438-4419-882a-2fc91d71772f/causes"`                   // Charitable causes
	Archive       string `json:"archive" example:"https://example.com/api/v1/recipients/3b1ea324-d438-4419-882a-2fc91d71772f/archive"`                 // Archives the recipient
	Unarchive     string `json:"unarchive" example:"https://example.com/api/v1/recipients/3b1ea324-d438-4419-882a-2fc91d71772f/unarchive"`             // Unarchives the recipient
	Reset         string `json:"reset" example:"https://example.com/api/v1/recipients/3b1ea324-d438-4419-882a-2fc91d71772f/reset?confirm=yes-reset-this-account"` // Resets the account
}

type Recipient struct {
	models.DefaultModel
	RecipientEditable
	Active            bool            `json:"active" example:"true"`           // Inactive recipients can not receive distributions
	Archived          bool            `json:"archived" example:"false"`        // Archived recipients are hidden from the list by default
	Balances          models.Amounts  `json:"balances"`                        // Balance per category
	TotalBalance      decimal.Decimal `json:"totalBalance" example:"42.5"`     // Sum of all balances
	ProjectedDividend decimal.Decimal `json:"projectedDividend" example:"0.5"` // Dividend the invest balance earns at the configured rate
	Theme             theme.Theme     `json:"theme"`                           // Profile theme
	Trophies          []trophy.Trophy `json:"trophies"`                        // Achievements, earned ones first
	Links             RecipientLinks  `json:"links"`
}

// newRecipient returns the API v1 representation of the resource. The
// categories of the model must be loaded.
func (co Controller) newRecipient(c *gin.Context, model models.Recipient) (Recipient, error) {
	balances, err := model.Balances()
	if err != nil {
		return Recipient{}, err
	}

	id := model.ID.String()

	return Recipient{
		DefaultModel: model.DefaultModel,
		RecipientEditable: RecipientEditable{
			Name:            model.Name,
			AllowanceAmount: model.AllowanceAmount,
			AvatarURL:       model.AvatarURL,
		},
		Active:            model.Active,
		Archived:          model.Archived,
		Balances:          balances,
		TotalBalance:      balances.Total(),
		ProjectedDividend: balances.ProjectedDividend(co.DividendRate),
		Theme:             theme.For(id),
		Trophies:          trophy.For(balances, co.Formatter),
		Links: RecipientLinks{
			Self:          link(c, "/recipients/%s", id),
			Undistributed: link(c, "/recipients/%s/undistributed", id),
			Distributions: link(c, "/recipients/%s/distributions", id),
			Transactions:  link(c, "/recipients/%s/transactions", id),
			Give:          link(c, "/recipients/%s/give", id),
			Causes:        link(c, "/recipients/%s/causes", id),
			Archive:       link(c, "/recipients/%s/archive", id),
			Unarchive:     link(c, "/recipients/%s/unarchive", id),
			Reset:         link(c, "/recipients/%s/reset?confirm=%s", id, resetConfirmation),
		},
	}, nil
}

type RecipientListResponse struct {
	Data  []Recipient `json:"data"`                                                          // List of resources
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecipientCreateResponse struct {
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []RecipientResponse `json:"data"`                                                          // List of created resources
}

func (r *RecipientCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RecipientResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecipientResponse struct {
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Recipient `json:"data"`                                                          // The resource
}

type RecipientQueryFilter struct {
	Archived bool `form:"archived"` // Include archived recipients
}

type ResetQuery struct {
	Confirm string `form:"confirm" example:"yes-reset-this-account"` // Must be "yes-reset-this-account"
}

type ResetResponse struct {
	Error   *string `json:"error" example:"the confirmation for the account reset was incorrect"` // The error, if any occurred
	Message string  `json:"message" example:"Sam's account has been reset"`                       // Confirmation message
}

type UndistributedResponse struct {
	Error *string                        `json:"error" example:"there is no recipient matching your query"` // The error, if any occurred
	Data  *models.UndistributedAllowance `json:"data"`                                                      // The undistributed allowance
}
