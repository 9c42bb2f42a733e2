package domain

type ResourceKind int

const (
	ResourceKindDatabase ResourceKind = iota
	ResourceKindSearchDomain
	ResourceKindObjectStorage
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceKindDatabase:
		return "database"
	case ResourceKindSearchDomain:
		return "search_domain"
	case ResourceKindObjectStorage:
		return "object_storage"
	default:
		return "unknown"
	}
}

// OwnershipMarker is the tag key that must be present on a resource before
// any of its tags are trusted. Database brokers write it title-cased.
func (k ResourceKind) OwnershipMarker() string {
	if k == ResourceKindDatabase {
		return "Organization GUID"
	}
	return "organization"
}

// PrefixSet holds the naming prefixes of one environment, per resource kind.
type PrefixSet struct {
	Database      string
	SearchDomain  string
	ObjectStorage string
}

func (p PrefixSet) For(kind ResourceKind) string {
	switch kind {
	case ResourceKindDatabase:
		return p.Database
	case ResourceKindSearchDomain:
		return p.SearchDomain
	case ResourceKindObjectStorage:
		return p.ObjectStorage
	default:
		return ""
	}
}

type ResourceKey struct {
	Kind       ResourceKind
	Identifier string
}

type Tag struct {
	Key   string
	Value string
}

type TagMap map[string]string

// NewTagMap normalizes a raw tag list; later duplicates win.
func NewTagMap(tags []Tag) TagMap {
	m := make(TagMap, len(tags))
	for _, t := range tags {
		m[t.Key] = t.Value
	}
	return m
}

func (m TagMap) Clone() TagMap {
	out := make(TagMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
