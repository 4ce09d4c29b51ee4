// Package pedagogy defines the fixed set of teaching styles the studio knows
// how to lay out, together with their static presentation tables.
package pedagogy

// Kind identifies a layout strategy. The set is closed: every identifier that
// is not one of the named kinds maps to KindGeneric.
type Kind int

const (
	KindGeneric Kind = iota
	KindProjectBased
	KindSocratic
	KindBlooms
	KindPeer
	KindConstructivist
	KindGamification
	KindFlipped
	KindInquiry
)

// Pedagogy identifiers as sent to and returned by the generation backend.
const (
	ProjectBasedLearning = "project_based_learning"
	SocraticQuestioning  = "socratic_questioning"
	BloomsTaxonomy       = "blooms_taxonomy"
	PeerLearning         = "peer_learning"
	Constructivist       = "constructivist"
	Gamification         = "gamification"
	FlippedClassroom     = "flipped_classroom"
	InquiryBasedLearning = "inquiry_based_learning"
)

var kindIDs = map[Kind]string{
	KindProjectBased:   ProjectBasedLearning,
	KindSocratic:       SocraticQuestioning,
	KindBlooms:         BloomsTaxonomy,
	KindPeer:           PeerLearning,
	KindConstructivist: Constructivist,
	KindGamification:   Gamification,
	KindFlipped:        FlippedClassroom,
	KindInquiry:        InquiryBasedLearning,
}

var idKinds = func() map[string]Kind {
	m := make(map[string]Kind, len(kindIDs))
	for k, id := range kindIDs {
		m[id] = k
	}
	return m
}()

// ParseKind resolves an identifier by exact match. Unknown, differently cased
// or padded identifiers resolve to KindGeneric.
func ParseKind(id string) Kind {
	if k, ok := idKinds[id]; ok {
		return k
	}
	return KindGeneric
}

// ID returns the backend identifier of a named kind, or "" for KindGeneric.
func (k Kind) ID() string {
	return kindIDs[k]
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if id := k.ID(); id != "" {
		return id
	}
	return "generic"
}

// Kinds returns the named kinds in catalog order.
func Kinds() []Kind {
	return []Kind{
		KindBlooms,
		KindSocratic,
		KindProjectBased,
		KindFlipped,
		KindInquiry,
		KindConstructivist,
		KindGamification,
		KindPeer,
	}
}

// IsKnown reports whether id names one of the dedicated layouts.
func IsKnown(id string) bool {
	_, ok := idKinds[id]
	return ok
}
