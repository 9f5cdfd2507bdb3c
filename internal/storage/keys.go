package storage

// Logical key names for the KV substrate. User-scoped entities are stored
// under ScopedKey(logical, scope); global entities under the logical name
// alone.
const (
	KeyAuthUser        = "auth_user"        // global
	KeyTips            = "tips_data"        // global, seeded once
	KeyEventsPublished = "events_published" // global
	KeyActivities      = "activities"       // scoped
	KeyTipsSaved       = "tips_saved"       // scoped
	KeyCalcInputs      = "calc_inputs"      // scoped
	KeyEventProposals  = "event_proposals"  // scoped
	KeyEventsRSVP      = "events_rsvp"      // scoped
)

// AnonymousScope is the fallback scope when no user is signed in.
const AnonymousScope = "anonymous"

// ScopedKey builds the storage key for a user-scoped logical name.
func ScopedKey(logical, scope string) string {
	if scope == "" {
		scope = AnonymousScope
	}
	return logical + "__" + scope
}
