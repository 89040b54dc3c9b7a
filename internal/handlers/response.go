package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/errs"
)

type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func init() {
	// report JSON field names instead of Go struct field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// respondError writes err with the status of its kind. Internal errors are logged and
// replaced by a generic message.
func respondError(c *gin.Context, err error, resource string) {
	status := errs.StatusCode(err)
	message := err.Error()

	switch {
	case status == http.StatusInternalServerError:
		log.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		message = errs.ErrInternalServer.Error()
	case errors.Is(err, errs.ErrNotFound) && resource != "":
		message = resource + " not found"
	}

	c.JSON(status, ErrorResponse{Error: message, Fields: errs.Fields(err)})
}

// bindJSON decodes the request body into dst and converts binding failures into
// validation errors that name the offending fields.
func bindJSON(c *gin.Context, dst interface{}) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, fieldName(fe))
		}
		return errs.Invalid(fields...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return errs.Invalidf("invalid value for "+typeErr.Field, typeErr.Field)
	}

	return errs.Invalidf("malformed request body")
}

// fieldName renders a validator field as a JSON path, e.g. items[0].quantity.
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func parseObjectID(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, errs.Invalidf("invalid id", "id")
	}
	return id, nil
}
