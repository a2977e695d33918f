// Package vocab assembles the vocabulary artifact: extracted terms grouped
// by category plus the predicate signatures active for a document. The rule
// tables here are ordered data, not control flow; table order is part of
// the output contract.
package vocab

import "github.com/maibinhkznk209/policyfact/pkg/policyfact/ingest"

// Signature declares a predicate: name, arity, and a display template.
// Immutable at runtime.
type Signature struct {
	Name     string `json:"name"`
	Arity    int    `json:"arity"`
	Template string `json:"template"`
}

// CatalogEntry pairs a signature with the trigger keywords that activate it.
type CatalogEntry struct {
	Signature
	Triggers []string
}

// DefaultPhrases lists the multi-word domain phrases treated as single terms.
func DefaultPhrases() []string {
	return []string{
		"privacy policy",
		"google account",
		"privacy controls",
		"unique identifiers",
		"unique identifier",
		"server logs",
		"ip address",
		"personal information",
		"business needs",
		"legal needs",
		"auto-delete",
		"auto delete",
	}
}

// DefaultCategories is the ordered category table for term categorization.
func DefaultCategories() []ingest.Category {
	return []ingest.Category{
		{Name: "actors", Keywords: []string{
			"google", "user", "users", "we", "our", "you",
		}},
		{Name: "contexts", Keywords: []string{
			"service", "services", "account", "browser", "browsers", "app", "apps",
			"device", "devices", "settings", "controls", "privacy controls", "google account",
		}},
		{Name: "data_types", Keywords: []string{
			"information", "personal information", "content", "data", "ip address",
			"identifiers", "unique identifiers", "unique identifier", "activity", "usage",
		}},
		{Name: "technologies", Keywords: []string{
			"cookies", "cookie", "server logs", "logs",
		}},
		{Name: "purposes", Keywords: []string{
			"provide", "deliver", "maintain", "keep", "improve", "personalize",
			"communicate", "protect", "fraud", "abuse", "security", "risk", "preferences",
		}},
		{Name: "retention", Keywords: []string{
			"retain", "retention", "keep longer", "kept longer", "delete", "auto-delete", "auto delete",
		}},
		{Name: "reasons", Keywords: []string{
			"business needs", "legal needs", "business", "legal",
		}},
	}
}

// DefaultCatalog is the fixed predicate catalog with activation triggers,
// in declaration order.
func DefaultCatalog() []CatalogEntry {
	return []CatalogEntry{
		{Signature{"collects", 2, "collects(Actor, DataType)"},
			[]string{"collect", "collects", "information", "data", "personal information", "content"}},
		{Signature{"collects_content", 2, "collects_content(Actor, ContentType)"},
			[]string{"content"}},
		{Signature{"collects_tech_data", 2, "collects_tech_data(Actor, TechDataType)"},
			[]string{"device", "ip address", "cookies", "server logs", "logs"}},
		{Signature{"uses_technology", 2, "uses_technology(Actor, Technology)"},
			[]string{"cookies", "server logs", "logs"}},
		{Signature{"uses_for", 2, "uses_for(Actor, Purpose)"},
			[]string{"use", "uses", "purpose", "provide", "improve", "protect", "personalize", "communicate"}},
		{Signature{"purpose", 3, "purpose(Actor, DataType, Purpose)"},
			[]string{"purpose", "use", "uses"}},
		{Signature{"varies_by", 2, "varies_by(Process, Factor)  % e.g., varies_by(data_collection, privacy_controls)"},
			[]string{"vary", "varies", "privacy controls"}},
		{Signature{"stores_under_identifier", 4, "stores_under_identifier(Actor, IdentifierType, Context, Purpose)"},
			[]string{"unique identifier", "unique identifiers", "identifier"}},
		{Signature{"retains", 3, "retains(Actor, DataType, RetentionPolicy)"},
			[]string{"retain", "retention", "kept longer", "keep longer"}},
		{Signature{"allows_setting", 2, "allows_setting(Actor, SettingAction)  % e.g., delete/auto_delete"},
			[]string{"delete", "auto-delete", "auto delete"}},
		{Signature{"may_keep_longer_for", 3, "may_keep_longer_for(Actor, DataType, Reason)"},
			[]string{"business", "legal", "business needs", "legal needs"}},
	}
}

// FallbackSignatures is the minimal predicate set forced active when no
// catalog entry triggers, so the vocabulary is never empty.
func FallbackSignatures() []Signature {
	return []Signature{
		{"collects", 2, "collects(Actor, DataType)"},
		{"uses_for", 2, "uses_for(Actor, Purpose)"},
	}
}
