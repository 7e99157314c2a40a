package terrain

import "fmt"

// Geometry error codes.
const (
	CodeDegeneratePath   = "DEGENERATE_PATH"
	CodeBadHalfWidth     = "BAD_HALF_WIDTH"
	CodeShapeOutOfBounds = "SHAPE_OUT_OF_BOUNDS"
	CodeBadShape         = "BAD_SHAPE"
	CodeBadWorldSize     = "BAD_WORLD_SIZE"
	CodeBadBridge        = "BAD_BRIDGE"
)

// GeometryError reports invalid world geometry. Worlds fail fast on
// construction and on every geometry change; a mask is never built from
// geometry that did not validate.
type GeometryError struct {
	Code    string
	Message string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func geometryErr(code, format string, args ...any) *GeometryError {
	return &GeometryError{Code: code, Message: fmt.Sprintf(format, args...)}
}
