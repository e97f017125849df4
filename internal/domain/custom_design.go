package domain

import (
	"encoding/json"
	"time"
)

// CustomDesign is a customer-authored shirt layout: the editable element
// lists for both sides plus rendered previews. The design JSON is opaque to
// the backend; it is stored and returned verbatim for the editor.
type CustomDesign struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	Name         string          `json:"name"`
	FrontDesign  json.RawMessage `json:"front_design"`
	BackDesign   json.RawMessage `json:"back_design"`
	PreviewFront string          `json:"preview_front,omitempty"`
	PreviewBack  string          `json:"preview_back,omitempty"`
	// BaseProductID points at the blank shirt the layout renders onto; nil
	// when no custom base product is active.
	BaseProductID *int64    `json:"base_product_id,omitempty"`
	CreatedOn     time.Time `json:"created_on"`
	UpdatedOn     time.Time `json:"updated_on"`
}
