package diagram

import (
	"strings"
	"unicode"
)

// =============================================================================
// Component Kinds
// =============================================================================

// ComponentKind is the closed set of node types understood by the exporter.
// Strings from the editor are parsed with [ParseComponentKind]; anything
// unrecognised becomes [KindComponent].
type ComponentKind int

const (
	// KindComponent is the generic fallback for unknown node types.
	KindComponent ComponentKind = iota
	KindClient
	KindFrontend
	KindMobileApp
	KindService
	KindWorker
	KindServerless
	KindAPIGateway
	KindLoadBalancer
	KindProxy
	KindCDN
	KindDatabase
	KindDataWarehouse
	KindTable
	KindCache
	KindSearchEngine
	KindObjectStorage
	KindMessageBroker
	KindQueue
	KindEventStream
	KindIdentityProvider
	KindMonitoring
	KindExternalService
	KindSystem
	KindExternalSystem
	KindBusinessDomain
	KindVPC
	KindSubnet

	// NumComponentKinds is the number of component kinds. Tables indexed by
	// ComponentKind must have exactly this length.
	NumComponentKinds
)

// componentNames holds the canonical name and display title of every kind.
// The blank array below fails to compile when a kind has no entry.
var componentNames = [...]struct{ name, title string }{
	KindComponent:        {"component", "Component"},
	KindClient:           {"client", "Client"},
	KindFrontend:         {"frontend", "Frontend"},
	KindMobileApp:        {"mobile-app", "Mobile App"},
	KindService:          {"service", "Service"},
	KindWorker:           {"worker", "Worker"},
	KindServerless:       {"serverless", "Serverless Function"},
	KindAPIGateway:       {"api-gateway", "API Gateway"},
	KindLoadBalancer:     {"load-balancer", "Load Balancer"},
	KindProxy:            {"proxy", "Proxy"},
	KindCDN:              {"cdn", "CDN"},
	KindDatabase:         {"database", "Database"},
	KindDataWarehouse:    {"data-warehouse", "Data Warehouse"},
	KindTable:            {"table", "Table"},
	KindCache:            {"cache", "Cache"},
	KindSearchEngine:     {"search-engine", "Search Engine"},
	KindObjectStorage:    {"object-storage", "Object Storage"},
	KindMessageBroker:    {"message-broker", "Message Broker"},
	KindQueue:            {"queue", "Queue"},
	KindEventStream:      {"event-stream", "Event Stream"},
	KindIdentityProvider: {"identity-provider", "Identity Provider"},
	KindMonitoring:       {"monitoring", "Monitoring"},
	KindExternalService:  {"external-service", "External Service"},
	KindSystem:           {"system", "System"},
	KindExternalSystem:   {"external-system", "External System"},
	KindBusinessDomain:   {"business-domain", "Business Domain"},
	KindVPC:              {"vpc", "VPC"},
	KindSubnet:           {"subnet", "Subnet"},
}

var _ = [1]struct{}{}[len(componentNames)-int(NumComponentKinds)]

// componentAliases maps editor spellings onto kinds, in addition to the
// canonical names.
var componentAliases = map[string]ComponentKind{
	"web-app":         KindFrontend,
	"spa":             KindFrontend,
	"mobile":          KindMobileApp,
	"microservice":    KindService,
	"backend":         KindService,
	"lambda":          KindServerless,
	"function":        KindServerless,
	"gateway":         KindAPIGateway,
	"lb":              KindLoadBalancer,
	"reverse-proxy":   KindProxy,
	"db":              KindDatabase,
	"warehouse":       KindDataWarehouse,
	"broker":          KindMessageBroker,
	"stream":          KindEventStream,
	"search":          KindSearchEngine,
	"storage":         KindObjectStorage,
	"blob-storage":    KindObjectStorage,
	"idp":             KindIdentityProvider,
	"auth":            KindIdentityProvider,
	"observability":   KindMonitoring,
	"external":        KindExternalService,
	"third-party":     KindExternalService,
	"user":            KindClient,
	"person":          KindClient,
	"actor":           KindClient,
	"domain":          KindBusinessDomain,
	"bounded-context": KindBusinessDomain,
	"container":       KindSystem,
}

var componentByName = func() map[string]ComponentKind {
	m := make(map[string]ComponentKind, len(componentNames)+len(componentAliases))
	for k, n := range componentNames {
		m[n.name] = ComponentKind(k)
	}
	for alias, k := range componentAliases {
		m[alias] = k
	}
	return m
}()

// ParseComponentKind converts an editor type string such as "apiGateway",
// "api_gateway" or "API Gateway" into a kind. Unknown strings return
// [KindComponent].
func ParseComponentKind(s string) ComponentKind {
	if k, ok := componentByName[normalizeName(s)]; ok {
		return k
	}
	return KindComponent
}

// String returns the canonical name of the kind.
func (k ComponentKind) String() string {
	if k < 0 || k >= NumComponentKinds {
		return componentNames[KindComponent].name
	}
	return componentNames[k].name
}

// Title returns the human-readable name used in node labels.
func (k ComponentKind) Title() string {
	if k < 0 || k >= NumComponentKinds {
		return componentNames[KindComponent].title
	}
	return componentNames[k].title
}

// IsBoundary reports whether the kind groups other nodes and renders as a
// dashed container rather than a component box.
func (k ComponentKind) IsBoundary() bool {
	switch k {
	case KindSystem, KindExternalSystem, KindBusinessDomain, KindVPC, KindSubnet:
		return true
	}
	return false
}

// =============================================================================
// Connection Kinds
// =============================================================================

// ConnectionKind is the closed set of edge types.
type ConnectionKind int

const (
	// ConnDefault is used for edges without (or with an unknown) connection type.
	ConnDefault ConnectionKind = iota
	ConnREST
	ConnGRPC
	ConnGraphQL
	ConnAsync
	ConnAsyncBidirectional
	ConnDatabase
	ConnReplication
	ConnCache
	ConnDependency
	ConnComposition
	ConnAggregation
	ConnMethodCall
	ConnInheritance
	ConnOIDC
	ConnOAuth2
	ConnSAML
	ConnWS
	ConnWSS
	ConnRelationship

	// NumConnectionKinds is the number of connection kinds.
	NumConnectionKinds
)

var connectionNames = [...]string{
	ConnDefault:            "default",
	ConnREST:               "rest",
	ConnGRPC:               "grpc",
	ConnGraphQL:            "graphql",
	ConnAsync:              "async",
	ConnAsyncBidirectional: "async-bidirectional",
	ConnDatabase:           "database-connection",
	ConnReplication:        "database-replication",
	ConnCache:              "cache-connection",
	ConnDependency:         "dependency",
	ConnComposition:        "composition",
	ConnAggregation:        "aggregation",
	ConnMethodCall:         "method-call",
	ConnInheritance:        "inheritance",
	ConnOIDC:               "oidc",
	ConnOAuth2:             "oauth2",
	ConnSAML:               "saml",
	ConnWS:                 "ws",
	ConnWSS:                "wss",
	ConnRelationship:       "relationship",
}

var _ = [1]struct{}{}[len(connectionNames)-int(NumConnectionKinds)]

var connectionAliases = map[string]ConnectionKind{
	"g-rpc":             ConnGRPC,
	"graph-ql":          ConnGraphQL,
	"http":              ConnREST,
	"https":             ConnREST,
	"sync":              ConnREST,
	"pub-sub":           ConnAsync,
	"pubsub":            ConnAsync,
	"event":             ConnAsync,
	"bidirectional":     ConnAsyncBidirectional,
	"database":          ConnDatabase,
	"db":                ConnDatabase,
	"replication":       ConnReplication,
	"cache":             ConnCache,
	"depends-on":        ConnDependency,
	"call":              ConnMethodCall,
	"extends":           ConnInheritance,
	"oauth":             ConnOAuth2,
	"websocket":         ConnWS,
	"secure-websocket":  ConnWSS,
	"relationship-type": ConnRelationship,
}

var connectionByName = func() map[string]ConnectionKind {
	m := make(map[string]ConnectionKind, len(connectionNames)+len(connectionAliases))
	for k, n := range connectionNames {
		m[n] = ConnectionKind(k)
	}
	for alias, k := range connectionAliases {
		m[alias] = k
	}
	return m
}()

// ParseConnectionKind converts an editor connection type into a kind.
// Empty and unknown strings return [ConnDefault].
func ParseConnectionKind(s string) ConnectionKind {
	if k, ok := connectionByName[normalizeName(s)]; ok {
		return k
	}
	return ConnDefault
}

// String returns the canonical name of the kind.
func (k ConnectionKind) String() string {
	if k < 0 || k >= NumConnectionKinds {
		return connectionNames[ConnDefault]
	}
	return connectionNames[k]
}

// =============================================================================
// Status
// =============================================================================

// Status is the lifecycle status of a node.
type Status int

const (
	StatusDefault Status = iota
	StatusNew
	StatusExisting
	StatusRefinement
)

// ParseStatus converts a status string. Unknown values return [StatusDefault].
func ParseStatus(s string) Status {
	switch normalizeName(s) {
	case "new":
		return StatusNew
	case "existing":
		return StatusExisting
	case "refinement", "refine", "changed":
		return StatusRefinement
	}
	return StatusDefault
}

// String returns the status name, or "default".
func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusExisting:
		return "existing"
	case StatusRefinement:
		return "refinement"
	}
	return "default"
}

// normalizeName lowercases s and turns camelCase, underscores and spaces into
// single hyphens: "apiGateway", "api_gateway" and "API Gateway" all become
// "api-gateway".
func normalizeName(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	prevLower := false
	for _, r := range s {
		switch {
		case r == '_' || r == ' ' || r == '-':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
