package kb

import (
	"sort"
	"strings"
)

// triggerRule is one entry of the extraction battery. Rules see only the
// shared normalized text, never each other's output, so evaluation is
// order-independent; emission order is fixed by declaration order below.
type triggerRule struct {
	name string
	fire func(t string, em *emitter)
}

// purposeMapping maps a trigger keyword to its canonical purpose constant.
type purposeMapping struct {
	keyword string
	purpose string
}

// purposeTable is the keyword → canonical purpose map. Several keywords fold
// into the same canonical purpose; matched purposes are emitted in sorted
// canonical order so output does not depend on keyword match order.
var purposeTable = []purposeMapping{
	{"provide", "provide_services"},
	{"deliver", "provide_services"},
	{"maintain", "maintain_services"},
	{"keep", "maintain_services"},
	{"improve", "improve_services"},
	{"personalize", "personalize_content_ads"},
	{"communicate", "communicate_with_users"},
	{"protect", "protect_from_fraud_abuse_security_risks"},
	{"fraud", "protect_from_fraud_abuse_security_risks"},
	{"abuse", "protect_from_fraud_abuse_security_risks"},
	{"security", "protect_from_fraud_abuse_security_risks"},
	{"risk", "protect_from_fraud_abuse_security_risks"},
}

// defaultRules returns the extraction battery in its fixed sequence.
func defaultRules() []triggerRule {
	return []triggerRule{
		{"baseline_actors", func(t string, em *emitter) {
			em.fact(F("company", "google"))
			em.fact(F("actor", "google"))
			em.fact(F("actor", "user"))
			em.statement("- company(google) ∧ actor(google) ∧ actor(user).")
		}},

		{"collects_information", func(t string, em *emitter) {
			if strings.Contains(t, "collect") {
				em.fact(F("collects", "google", "information"))
				em.statement("- collects(google, information).")
			}
		}},

		{"google_account", func(t string, em *emitter) {
			if !strings.Contains(t, "google account") {
				return
			}
			em.fact(F("context", "google_account"))
			em.statement("- context(google_account).")
			if strings.Contains(t, "provide") || strings.Contains(t, "provided") {
				em.fact(F("collects", "google", "personal_information"))
				em.fact(F("purpose", "google", "personal_information", "create_or_use_account"))
				em.statement("- collects(google, personal_information) ∧ purpose(google, personal_information, create_or_use_account).")
			}
		}},

		{"content_collection", func(t string, em *emitter) {
			if strings.Contains(t, "content") {
				em.fact(F("collects_content", "google", "user_content"))
				em.statement("- collects_content(google, user_content).")
			}
		}},

		{"cookies", func(t string, em *emitter) {
			if strings.Contains(t, "cookie") {
				em.fact(F("uses_technology", "google", "cookies"))
				em.statement("- uses_technology(google, cookies).")
			}
		}},

		{"server_logs", func(t string, em *emitter) {
			if strings.Contains(t, "server log") {
				em.fact(F("uses_technology", "google", "server_logs"))
				em.statement("- uses_technology(google, server_logs).")
			}
		}},

		{"technical_data", func(t string, em *emitter) {
			markers := []string{"device", "devices", "browser", "browsers", "app", "apps", "ip address", "ip"}
			for _, m := range markers {
				if strings.Contains(t, m) {
					em.fact(F("collects_tech_data", "google", "technical_data"))
					em.statement("- collects_tech_data(google, technical_data).")
					break
				}
			}
		}},

		{"ip_address", func(t string, em *emitter) {
			if strings.Contains(t, "ip address") {
				em.fact(F("collects_tech_data", "google", "ip_address"))
				em.statement("- collects_tech_data(google, ip_address).")
			}
		}},

		{"varies_by", func(t string, em *emitter) {
			if strings.Contains(t, "vary") || strings.Contains(t, "varies") {
				em.fact(F("varies_by", "data_collection", "service_usage"))
				em.fact(F("varies_by", "data_collection", "privacy_controls"))
				em.statement("- varies_by(data_collection, service_usage) ∧ varies_by(data_collection, privacy_controls).")
			}
		}},

		{"not_signed_in", func(t string, em *emitter) {
			if strings.Contains(t, "not signed") && strings.Contains(t, "identifier") {
				em.fact(F("stores_under_identifier", "google", "unique_identifier", "not_signed_in", "remember_preferences"))
				em.statement("- stores_under_identifier(google, unique_identifier, not_signed_in, remember_preferences).")
			}
		}},

		{"purposes", func(t string, em *emitter) {
			matched := make(map[string]struct{})
			for _, pm := range purposeTable {
				if strings.Contains(t, pm.keyword) {
					matched[pm.purpose] = struct{}{}
				}
			}
			purposes := make([]string, 0, len(matched))
			for p := range matched {
				purposes = append(purposes, p)
			}
			sort.Strings(purposes)
			for _, p := range purposes {
				em.fact(F("uses_for", "google", p))
				em.statement("- uses_for(google, " + p + ").")
			}
		}},

		{"retention", func(t string, em *emitter) {
			if strings.Contains(t, "retain") || strings.Contains(t, "retention") || strings.Contains(t, "kept") {
				em.fact(F("retains", "google", "data", "retention_policy"))
				em.statement("- retains(google, data, retention_policy).")
			}
		}},

		{"auto_delete", func(t string, em *emitter) {
			if strings.Contains(t, "auto-delete") || strings.Contains(t, "auto delete") {
				em.fact(F("allows_setting", "google", "auto_delete"))
				em.statement("- allows_setting(google, auto_delete).")
			}
		}},

		{"delete", func(t string, em *emitter) {
			if strings.Contains(t, "delete") {
				em.fact(F("allows_setting", "google", "delete"))
				em.statement("- allows_setting(google, delete).")
			}
		}},

		{"business_needs", func(t string, em *emitter) {
			if strings.Contains(t, "business needs") {
				em.fact(F("may_keep_longer_for", "google", "data", "business_needs"))
				em.statement("- may_keep_longer_for(google, data, business_needs).")
			}
		}},

		{"legal_needs", func(t string, em *emitter) {
			if strings.Contains(t, "legal needs") {
				em.fact(F("may_keep_longer_for", "google", "data", "legal_needs"))
				em.statement("- may_keep_longer_for(google, data, legal_needs).")
			}
		}},
	}
}
