package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grovesmith/backend/internal/models"
	"github.com/shopspring/decimal"
)

type CauseEditable struct {
	Name        string          `json:"name" example:"Animal Shelter"`                                                                             // Name of the cause
	Description string          `json:"description" example:"Food for the cats at the shelter" default:""`                                         // Description of the cause
	GoalAmount  decimal.Decimal `json:"goalAmount" example:"50" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Amount to collect
	DueDate     *time.Time      `json:"dueDate" example:"2024-12-24T00:00:00Z"`                                                                    // Day the goal should be reached, if any
}

// model returns the model input for the editable fields
func (editable CauseEditable) model() models.CauseCreate {
	return models.CauseCreate{
		Name:        editable.Name,
		Description: editable.Description,
		GoalAmount:  editable.GoalAmount,
		DueDate:     editable.DueDate,
	}
}

type CauseLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/causes/9a3d7c2e-6a41-4e0e-9a53-0c1b2e7f8d90"`                  // The cause itself
	Recipient   string `json:"recipient" example:"https://example.com/api/v1/recipients/3b1ea324-d438-4419-882a-2fc91d71772f"`         // The recipient
	Allocations string `json:"allocations" example:"https://example.com/api/v1/causes/9a3d7c2e-6a41-4e0e-9a53-0c1b2e7f8d90/allocations"` // Allocates money to the cause
	Complete    string `json:"complete" example:"https://example.com/api/v1/causes/9a3d7c2e-6a41-4e0e-9a53-0c1b2e7f8d90/complete"`       // Donates the allocated money
}

type Cause struct {
	models.DefaultModel
	CauseEditable
	models.CauseProgress
	RecipientID   uuid.UUID       `json:"recipientId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // The recipient
	CurrentAmount decimal.Decimal `json:"currentAmount" example:"20"`                                 // Amount allocated so far
	IsCompleted   bool            `json:"isCompleted" example:"false"`                                // The allocated money has been donated
	CompletedAt   *time.Time      `json:"completedAt" example:"2024-12-20T17:02:11.314736Z"`          // When the money was donated
	Links         CauseLinks      `json:"links"`
}

// newCause returns the API v1 representation of the resource
func newCause(c *gin.Context, model models.CharitableCause, now time.Time) Cause {
	return Cause{
		DefaultModel: model.DefaultModel,
		CauseEditable: CauseEditable{
			Name:        model.Name,
			Description: model.Description,
			GoalAmount:  model.GoalAmount,
			DueDate:     model.DueDate,
		},
		CauseProgress: model.Progress(now),
		RecipientID:   model.RecipientID,
		CurrentAmount: model.CurrentAmount,
		IsCompleted:   model.IsCompleted,
		CompletedAt:   model.CompletedAt,
		Links: CauseLinks{
			Self:        link(c, "/causes/%s", model.ID),
			Recipient:   link(c, "/recipients/%s", model.RecipientID),
			Allocations: link(c, "/causes/%s/allocations", model.ID),
			Complete:    link(c, "/causes/%s/complete", model.ID),
		},
	}
}

type CauseListResponse struct {
	Data  []Cause `json:"data"`                                                      // List of resources
	Error *string `json:"error" example:"there is no recipient matching your query"` // The error, if any occurred
}

type CauseResponse struct {
	Error *string `json:"error" example:"maximum of 3 active causes allowed per recipient"` // The error, if any occurred
	Data  *Cause  `json:"data"`                                                             // The resource
}

type AllocationEditable struct {
	Amount decimal.Decimal `json:"amount" example:"10" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Amount of unallocated Give money to earmark
}

type Give struct {
	Balance models.GiveBalance `json:"balance"` // Give balance split by allocation
	Causes  []Cause            `json:"causes"`  // All causes, active and completed
}

type GiveResponse struct {
	Error *string `json:"error" example:"there is no recipient matching your query"` // The error, if any occurred
	Data  *Give   `json:"data"`                                                      // The Give tab
}
