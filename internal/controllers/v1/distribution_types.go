package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grovesmith/backend/internal/models"
	"github.com/shopspring/decimal"
)

type DistributionEditable struct {
	Date         *time.Time       `json:"date" example:"2024-07-06T00:00:00Z"`                                                                          // Day of the distribution. Defaults to today
	GiveAmount   decimal.Decimal  `json:"giveAmount" example:"2.5" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"`   // Amount for the give category
	SpendAmount  decimal.Decimal  `json:"spendAmount" example:"2.5" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"`  // Amount for the spend category
	SaveAmount   decimal.Decimal  `json:"saveAmount" example:"2.5" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"`   // Amount for the save category
	InvestAmount decimal.Decimal  `json:"investAmount" example:"2.5" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"` // Amount for the invest category
	EqualSplit   *decimal.Decimal `json:"equalSplit,omitempty" example:"10"`                                                                            // Splits this total equally instead of using the category amounts
	Notes        string           `json:"notes" example:"Birthday bonus" default:""`                                                                    // Notes about the distribution
}

// create returns the model input for the request
func (editable DistributionEditable) create(recipientID uuid.UUID) (models.DistributionCreate, error) {
	amounts := models.Amounts{
		Give:   editable.GiveAmount,
		Spend:  editable.SpendAmount,
		Save:   editable.SaveAmount,
		Invest: editable.InvestAmount,
	}

	if editable.EqualSplit != nil {
		for _, t := range models.CategoryTypes {
			if !amounts.Get(t).IsZero() {
				return models.DistributionCreate{}, errAmountsAndSplit
			}
		}

		amounts = models.EqualSplit(*editable.EqualSplit)
	}

	create := models.DistributionCreate{
		RecipientID: recipientID,
		Amounts:     amounts,
		Notes:       editable.Notes,
	}

	if editable.Date != nil {
		create.Date = *editable.Date
	}

	return create, nil
}

type DistributionLinks struct {
	Recipient    string `json:"recipient" example:"https://example.com/api/v1/recipients/3b1ea324-d438-4419-882a-2fc91d71772f"`                 // The recipient
	Transactions string `json:"transactions" example:"https://example.com/api/v1/recipients/3b1ea324-d438-4419-882a-2fc91d71772f/transactions"` // Transaction history of the recipient
}

type Distribution struct {
	models.DefaultModel
	RecipientID      uuid.UUID         `json:"recipientId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // The recipient
	DistributionDate time.Time         `json:"distributionDate" example:"2024-07-06T00:00:00Z"`            // Day of the distribution
	Amounts          models.Amounts    `json:"amounts"`                                                    // Amount per category
	TotalAmount      decimal.Decimal   `json:"totalAmount" example:"10"`                                   // Sum of all amounts
	Notes            string            `json:"notes" example:"Birthday bonus"`                             // Notes about the distribution
	Links            DistributionLinks `json:"links"`
}

// newDistribution returns the API v1 representation of the resource
func newDistribution(c *gin.Context, model models.Distribution) Distribution {
	return Distribution{
		DefaultModel:     model.DefaultModel,
		RecipientID:      model.RecipientID,
		DistributionDate: model.DistributionDate,
		Amounts:          model.Amounts(),
		TotalAmount:      model.TotalAmount,
		Notes:            model.Notes,
		Links: DistributionLinks{
			Recipient:    link(c, "/recipients/%s", model.RecipientID),
			Transactions: link(c, "/recipients/%s/transactions", model.RecipientID),
		},
	}
}

type DistributionListResponse struct {
	Data  []Distribution `json:"data"`                                                      // List of resources
	Error *string        `json:"error" example:"there is no recipient matching your query"` // The error, if any occurred
}

type DistributionResponse struct {
	Error *string       `json:"error" example:"individual category amounts cannot be negative"` // The error, if any occurred
	Data  *Distribution `json:"data"`                                                           // The resource
}
