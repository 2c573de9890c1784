// Package moderation models the classification verdict returned by the
// content moderation capability.
package moderation

// Category names a policy-violation class. The set is fixed: verdicts are an
// enumerated list of named boolean flags, not a dynamic object walk.
type Category string

// Moderation categories, in canonical reporting order.
const (
	CategoryHate                  Category = "hate"
	CategoryHateThreatening       Category = "hate/threatening"
	CategoryHarassment            Category = "harassment"
	CategoryHarassmentThreatening Category = "harassment/threatening"
	CategorySelfHarm              Category = "self-harm"
	CategorySelfHarmIntent        Category = "self-harm/intent"
	CategorySelfHarmInstructions  Category = "self-harm/instructions"
	CategorySexual                Category = "sexual"
	CategorySexualMinors          Category = "sexual/minors"
	CategoryViolence              Category = "violence"
	CategoryViolenceGraphic       Category = "violence/graphic"
)

// Flag pairs a category with its boolean classification result.
type Flag struct {
	Category Category
	Flagged  bool
}

// Verdict is the classification of one piece of text. Derived once per
// request, immutable, discarded after the accept/reject decision.
type Verdict struct {
	Flagged bool
	Flags   []Flag
}

// FlaggedNames returns the names of every flagged category, in the order the
// flags were enumerated. Empty when the verdict is clean.
func (v Verdict) FlaggedNames() []string {
	var names []string
	for _, f := range v.Flags {
		if f.Flagged {
			names = append(names, string(f.Category))
		}
	}
	return names
}
