package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nisequence/two-sense/internal/models"
	"gorm.io/gorm"
)

// HouseholdEditable represents all user configurable parameters
type HouseholdEditable struct {
	Name     string `json:"name" example:"Bag End" default:""`   // Name of the household
	Currency string `json:"currency" example:"EUR" default:"USD"` // ISO 4217 currency code
}

func (editable HouseholdEditable) model() models.Household {
	return models.Household{
		Name:     editable.Name,
		Currency: editable.Currency,
	}
}

// HouseholdMember is one participant and their share of the shared costs.
type HouseholdMember struct {
	UserID       uuid.UUID `json:"userId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	DisplayName  string    `json:"displayName" example:"Morre"`
	SharePercent int       `json:"sharePercent" example:"34"` // Percentage of shared costs this member carries
}

type HouseholdLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/households/3b1ea324-d438-4419-882a-2fc91d71772f"`
	Members string `json:"members" example:"https://example.com/api/v1/households/3b1ea324-d438-4419-882a-2fc91d71772f/members"`
}

type Household struct {
	models.DefaultModel
	HouseholdEditable
	AdminID uuid.UUID         `json:"adminId" example:"65392deb-5e92-4268-b114-297faad6cdce"` // The member managing this household
	Members []HouseholdMember `json:"members"`                                                // Members in join order
	Links   HouseholdLinks    `json:"links"`
}

func newHousehold(c *gin.Context, db *gorm.DB, model models.Household) (Household, error) {
	url := c.GetString(string(models.DBContextURL))

	household := Household{
		DefaultModel: model.DefaultModel,
		HouseholdEditable: HouseholdEditable{
			Name:     model.Name,
			Currency: model.Currency,
		},
		AdminID: model.AdminID,
		Members: make([]HouseholdMember, 0),
		Links: HouseholdLinks{
			Self:    fmt.Sprintf("%s/v1/households/%s", url, model.ID),
			Members: fmt.Sprintf("%s/v1/households/%s/members", url, model.ID),
		},
	}

	var members []models.HouseholdMember
	err := db.Where(&models.HouseholdMember{HouseholdID: model.ID}).Order("created_at ASC").Find(&members).Error
	if err != nil {
		return Household{}, err
	}

	for _, member := range members {
		household.Members = append(household.Members, HouseholdMember{
			UserID:       member.UserID,
			DisplayName:  member.DisplayName,
			SharePercent: member.SharePercent,
		})
	}

	return household, nil
}

type HouseholdResponse struct {
	Data  *Household `json:"data"`  // Data for the household
	Error *string    `json:"error"` // The error, if any occurred
}
