package semantics

import (
	"github.com/fxrazen/fxsema/files"
	"github.com/fxrazen/fxsema/tree"
	"go.uber.org/zap"
)

type Options struct {
	// ProjectPath is the directory holding the project's .env file. It is
	// only used by Env.
	ProjectPath string
	// ConfigConstants maps "NS::NAME" to a source snippet.
	ConfigConstants map[string]string
	Logger          *zap.Logger
}

type systemNamespaceKey struct {
	kind  NamespaceKind
	owner Thingy
}

// Host is the root of a semantic model. It owns the arena and every
// interning table.
//
// A Host is not safe for concurrent use.
type Host struct {
	log     *zap.Logger
	arena   *Arena
	factory *Factory

	projectPath     string
	configConstants map[string]string
	inlineConstants map[string]tree.Expr

	env       map[string]string
	envLoaded bool

	anyType      *AnyType
	voidType     *VoidType
	unresolved   *Unresolved
	invalidation *Invalidation
	topLevel     *Package

	qnames             map[*Namespace]map[string]*QName
	systemNamespaces   map[systemNamespaceKey]*Namespace
	explicitNamespaces map[string]*Namespace
	userNamespaces     map[string]*Namespace
	namespaceSets      map[uint64][]*NamespaceSet
	substitutions      map[Type][]*TypeAfterSubstitution
	tupleTypes         map[int][]*TupleType
	functionTypes      map[int][]*FunctionType
	nullableTypes      map[Type]*NullableType
	nonNullableTypes   map[Type]*NonNullableType

	wellKnown map[string]Type
}

func NewHost(opts Options) *Host {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	h := &Host{
		log:                log.Named("semantics"),
		arena:              &Arena{},
		projectPath:        opts.ProjectPath,
		configConstants:    map[string]string{},
		inlineConstants:    map[string]tree.Expr{},
		qnames:             map[*Namespace]map[string]*QName{},
		systemNamespaces:   map[systemNamespaceKey]*Namespace{},
		explicitNamespaces: map[string]*Namespace{},
		userNamespaces:     map[string]*Namespace{},
		namespaceSets:      map[uint64][]*NamespaceSet{},
		substitutions:      map[Type][]*TypeAfterSubstitution{},
		tupleTypes:         map[int][]*TupleType{},
		functionTypes:      map[int][]*FunctionType{},
		nullableTypes:      map[Type]*NullableType{},
		nonNullableTypes:   map[Type]*NonNullableType{},
		wellKnown:          map[string]Type{},
	}
	for k, v := range opts.ConfigConstants {
		h.configConstants[k] = v
	}
	h.factory = &Factory{host: h}

	h.anyType = register(h, &AnyType{})
	h.voidType = register(h, &VoidType{})
	h.unresolved = register(h, &Unresolved{})
	h.invalidation = register(h, &Invalidation{})
	h.topLevel = h.factory.newPackage("", nil)

	return h
}

func register[T Thingy](h *Host, t T) T {
	h.arena.add(t)
	return t
}

// WithLogger replaces the host's logger.
func (h *Host) WithLogger(log *zap.Logger) *Host {
	h.log = log.Named("semantics")
	return h
}

func (h *Host) Logger() *zap.Logger {
	return h.log
}

func (h *Host) Arena() *Arena {
	return h.arena
}

func (h *Host) Factory() *Factory {
	return h.factory
}

func (h *Host) TopLevelPackage() *Package {
	return h.topLevel
}

func (h *Host) AnyType() *AnyType {
	return h.anyType
}

func (h *Host) VoidType() *VoidType {
	return h.voidType
}

func (h *Host) UnresolvedThingy() *Unresolved {
	return h.unresolved
}

func (h *Host) InvalidationThingy() *Invalidation {
	return h.invalidation
}

// Env returns the variables of the project's .env file. The file is read
// once; a missing project path or an unreadable file yield an empty map.
func (h *Host) Env() map[string]string {
	if h.envLoaded {
		return h.env
	}
	h.envLoaded = true
	h.env = map[string]string{}

	path, err := files.NewFinder(h.projectPath).FindEnv()
	if err != nil {
		h.log.Debug("no env file", zap.Error(err))
		return h.env
	}
	env, err := files.LoadEnv(path)
	if err != nil {
		h.log.Warn("could not load env file", zap.String("path", path), zap.Error(err))
		return h.env
	}
	h.env = env
	return h.env
}

// ConfigConstant returns the source snippet of an inline configuration
// constant such as CONFIG::DEBUG.
func (h *Host) ConfigConstant(namespace, name string) (string, bool) {
	src, ok := h.configConstants[namespace+"::"+name]
	return src, ok
}

func (h *Host) HasConfigNamespace(namespace string) bool {
	prefix := namespace + "::"
	for k := range h.configConstants {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// InlineConstant returns the memoized parse of a configuration constant.
// A nil expression records a snippet that failed to parse.
func (h *Host) InlineConstant(key string) (tree.Expr, bool) {
	expr, ok := h.inlineConstants[key]
	return expr, ok
}

func (h *Host) SetInlineConstant(key string, expr tree.Expr) {
	h.inlineConstants[key] = expr
}
