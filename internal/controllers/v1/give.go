package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/grovesmith/backend/internal/models"
	"golang.org/x/sync/errgroup"
)

// GetGive returns the Give tab of a recipient
//
//	@Summary		Get Give balance
//	@Description	Returns the Give balance split into allocated and unallocated money together with all causes
//	@Tags			Causes
//	@Produce		json
//	@Success		200	{object}	GiveResponse
//	@Failure		400	{object}	GiveResponse
//	@Failure		401	{object}	GiveResponse
//	@Failure		404	{object}	GiveResponse
//	@Failure		500	{object}	GiveResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/recipients/{id}/give [get]
func (co Controller) GetGive(c *gin.Context) {
	managerID, recipient, err := recipientFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GiveResponse{Error: &e})
		return
	}

	var (
		balance models.GiveBalance
		causes  []models.CharitableCause
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		balance, err = models.GetGiveBalance(models.DB.WithContext(ctx), managerID, recipient.ID)
		return err
	})
	g.Go(func() error {
		var err error
		causes, err = models.ListCauses(models.DB.WithContext(ctx), managerID, recipient.ID)
		return err
	})

	if err := g.Wait(); err != nil {
		e := err.Error()
		c.JSON(status(err), GiveResponse{Error: &e})
		return
	}

	now := time.Now()
	give := Give{
		Balance: balance,
		Causes:  make([]Cause, 0, len(causes)),
	}
	for _, cause := range causes {
		give.Causes = append(give.Causes, newCause(c, cause, now))
	}

	c.JSON(http.StatusOK, GiveResponse{Data: &give})
}
