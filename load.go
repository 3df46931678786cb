package datapackage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/reoring/datapackage/diag"
	"github.com/reoring/datapackage/source"
)

// Descriptor file names tried when loading a directory, in order.
const (
	DescriptorFileName     = "datapackage.json"
	YAMLDescriptorFileName = "datapackage.yaml"
	ymlDescriptorFileName  = "datapackage.yml"
)

var (
	// ErrDescriptorNotFound is returned when a directory holds no descriptor file.
	ErrDescriptorNotFound = errors.New("datapackage: descriptor not found")
	// ErrNotObject is returned when the descriptor document is not an object.
	ErrNotObject = source.ErrNotObject
	// ErrUnknownProfile is returned when no registered profile matches the
	// descriptor.
	ErrUnknownProfile = errors.New("datapackage: unknown package profile")
	// ErrNotConstructed is returned when the descriptor was read but the package
	// could not be built; the log holds the reasons.
	ErrNotConstructed = errors.New("datapackage: package could not be constructed")
)

// DuplicatePolicy controls how repeated object keys in a descriptor file are
// reported. The last occurrence of a key always wins.
type DuplicatePolicy int

const (
	DuplicateWarn DuplicatePolicy = iota
	DuplicateError
	DuplicateIgnore
)

// ParseDuplicatePolicy accepts "warn", "error" and "ignore".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(s) {
	case "warn", "":
		return DuplicateWarn, nil
	case "error":
		return DuplicateError, nil
	case "ignore":
		return DuplicateIgnore, nil
	}
	return DuplicateWarn, fmt.Errorf("datapackage: unknown duplicate key policy %q", s)
}

// LoadOpt bundles loading options. When several are passed the last wins.
type LoadOpt struct {
	Duplicates DuplicatePolicy
	MaxDepth   int
	// MaxBytes rejects larger descriptor files; <= 0 means unlimited.
	MaxBytes int64
}

func loadOpt(opts []LoadOpt) LoadOpt {
	if len(opts) == 0 {
		return LoadOpt{}
	}
	return opts[len(opts)-1]
}

// ResolveDescriptorPath returns path itself for a file, or the first
// descriptor file found in it for a directory.
func ResolveDescriptorPath(path string) (string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !st.IsDir() {
		return path, nil
	}
	for _, name := range []string{DescriptorFileName, YAMLDescriptorFileName, ymlDescriptorFileName} {
		p := filepath.Join(path, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w in %s", ErrDescriptorNotFound, path)
}

// LoadFile reads the descriptor at path (a file or a package directory) and
// builds the package variant reg resolves for it. Problems with the content
// go to log; I/O and decoding failures are returned as errors.
func LoadFile(ctx context.Context, path string, reg *Registry[PackageVariant], log *diag.Log, opts ...LoadOpt) (PackageVariant, error) {
	p, err := ResolveDescriptorPath(path)
	if err != nil {
		return nil, err
	}
	opt := loadOpt(opts)
	if opt.MaxBytes > 0 {
		if st, err := os.Stat(p); err == nil && st.Size() > opt.MaxBytes {
			return nil, fmt.Errorf("datapackage: %s is %d bytes, limit %d", p, st.Size(), opt.MaxBytes)
		}
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	return LoadBytes(ctx, data, source.FormatOf(p), reg, log, opt)
}

// LoadBytes is LoadFile for an in-memory descriptor.
func LoadBytes(ctx context.Context, data []byte, format source.Format, reg *Registry[PackageVariant], log *diag.Log, opts ...LoadOpt) (PackageVariant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opt := loadOpt(opts)
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, fmt.Errorf("datapackage: descriptor is %d bytes, limit %d", len(data), opt.MaxBytes)
	}
	tree, err := source.Decode(data, format, source.Options{MaxDepth: opt.MaxDepth})
	if err != nil {
		return nil, err
	}
	reportDuplicates(tree.Duplicates, opt.Duplicates, log)
	if reg == nil {
		reg = DefaultRegistry()
	}
	if _, ok := reg.Lookup(tree.Root); !ok {
		log.Error(diag.UnknownEnumeration(ProfileName(tree.Root)), keyProfile)
		return nil, fmt.Errorf("%w %q", ErrUnknownProfile, ProfileName(tree.Root))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := reg.Resolve(tree.Root, log)
	if !ok {
		return nil, ErrNotConstructed
	}
	return v, nil
}

// reportDuplicates logs each repeated key as conflicting with itself.
func reportDuplicates(dups [][]string, policy DuplicatePolicy, log *diag.Log) {
	if policy == DuplicateIgnore {
		return
	}
	sev := diag.Warning
	if policy == DuplicateError {
		sev = diag.Error
	}
	for _, d := range dups {
		p := diag.Path(d)
		log.Append(p, sev, diag.Conflicting(p...))
	}
}

// Save writes the serialized package as indented JSON. A path whose base name
// is not DescriptorFileName is taken as a directory and created if needed.
func Save(p PackageVariant, path string) error {
	if filepath.Base(path) != DescriptorFileName {
		path = filepath.Join(path, DescriptorFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := source.MarshalJSON(p.Serialize())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
