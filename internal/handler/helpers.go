package handler

import (
	"net/http"
	"reflect"

	"github.com/MalditoKM/Asistent-Restaurant/internal/apierror"
	"github.com/MalditoKM/Asistent-Restaurant/internal/authz"
	"github.com/MalditoKM/Asistent-Restaurant/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// pathID parses the :id route param. Writes the 400 response on failure.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// requestScope resolves the ?restaurant= query param against the caller's
// role. Non-superadmins are always pinned to their own restaurant, whatever
// they asked for. An unparseable value falls back to the caller's default.
func requestScope(c *gin.Context) authz.Scope {
	req := authz.RequestedScope{}
	switch raw := c.Query("restaurant"); raw {
	case "", "mine":
	case "all":
		req.AllTenants = true
	default:
		if id, err := uuid.Parse(raw); err == nil {
			req.RestaurantID = &id
		}
	}
	return authz.ResolveScope(middleware.GetActor(c), req)
}

// respondErr maps a service error to its HTTP status and canonical envelope.
func respondErr(c *gin.Context, err error) {
	c.JSON(apierror.Status(err), apierror.New(err.Error()))
}
