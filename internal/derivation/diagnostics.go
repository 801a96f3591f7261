package derivation

// DiagnosticKind classifies why derivation produced a smaller tree than the order suggests.
type DiagnosticKind string

const (
	KindProductNotFound            DiagnosticKind = "product_not_found"
	KindEmptyRecipe                DiagnosticKind = "empty_recipe"
	KindIngredientWithoutTemplates DiagnosticKind = "ingredient_without_templates"
	KindPlaceholderSubstituted     DiagnosticKind = "placeholder_substituted"
)

// Diagnostic records a lenient skip made during derivation. ItemIndex is the
// position of the order item involved, or -1 for order-level notes.
type Diagnostic struct {
	Kind         DiagnosticKind `json:"kind"`
	ItemIndex    int            `json:"item_index"`
	ProductID    string         `json:"product_id,omitempty"`
	IngredientID string         `json:"ingredient_id,omitempty"`
	Message      string         `json:"message"`
}

// HasKind reports whether any diagnostic is of kind k.
func HasKind(diags []Diagnostic, k DiagnosticKind) bool {
	for _, d := range diags {
		if d.Kind == k {
			return true
		}
	}
	return false
}
