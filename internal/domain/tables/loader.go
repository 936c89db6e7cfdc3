package tables

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/conditions"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
)

//go:generate mockgen -destination=mock/mock_loader.go -package=mocktables -source=loader.go

//go:embed data/*.yaml
var embedded embed.FS

const (
	critPattern    = "crit_*.yaml"
	fumbleFile     = "fumbles.yaml"
	conditionsFile = "conditions.yaml"
)

// Loader supplies table data to the engine
type Loader interface {
	// LoadCritTables returns every crit table keyed by selector (I, II, ...)
	LoadCritTables(ctx context.Context) (map[string]*Table, error)
	LoadFumbleTable(ctx context.Context) (*Table, error)
	LoadConditionsRegistry(ctx context.Context) (*conditions.Registry, error)
}

type conditionsFileShape struct {
	Conditions []conditions.Definition `yaml:"conditions"`
}

// fsLoader reads tables from any fs.FS
type fsLoader struct {
	fsys fs.FS
}

// NewEmbeddedLoader returns a loader over the tables compiled into the binary
func NewEmbeddedLoader() Loader {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return &fsLoader{fsys: sub}
}

// NewDirLoader returns a loader reading the same file layout from dir
func NewDirLoader(dir string) Loader {
	return &fsLoader{fsys: os.DirFS(dir)}
}

// NewFSLoader returns a loader over fsys
func NewFSLoader(fsys fs.FS) Loader {
	return &fsLoader{fsys: fsys}
}

func (l *fsLoader) LoadCritTables(ctx context.Context) (map[string]*Table, error) {
	files, err := fs.Glob(l.fsys, critPattern)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list crit tables")
	}

	var mu sync.Mutex
	out := make(map[string]*Table, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			table, err := l.readTable(file)
			if err != nil {
				return err
			}
			if table.Name == "" {
				table.Name = selectorFromFile(file)
			}

			mu.Lock()
			defer mu.Unlock()
			out[NormalizeSelector(table.Name)] = table
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *fsLoader) LoadFumbleTable(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.readTable(fumbleFile)
}

func (l *fsLoader) LoadConditionsRegistry(ctx context.Context) (*conditions.Registry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var file conditionsFileShape
	if err := l.decode(conditionsFile, &file); err != nil {
		return nil, err
	}
	return conditions.NewRegistry(file.Conditions), nil
}

func (l *fsLoader) readTable(name string) (*Table, error) {
	var table Table
	if err := l.decode(name, &table); err != nil {
		return nil, err
	}
	table.sortEntries()
	return &table, nil
}

func (l *fsLoader) decode(name string, into any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return dnderr.NotFoundf("table file %s not found", name)
		}
		return dnderr.Wrapf(err, "failed to read %s", name)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(into); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, fmt.Sprintf("failed to decode %s", name))
	}
	return nil
}

// NormalizeSelector upper-cases a crit table selector ("iii" -> "III")
func NormalizeSelector(selector string) string {
	return strings.ToUpper(strings.TrimSpace(selector))
}

func selectorFromFile(file string) string {
	base := strings.TrimSuffix(path.Base(file), path.Ext(file))
	return strings.TrimPrefix(base, "crit_")
}
