package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	delta_sharing "github.com/magpierre/go_delta_sharing_client"
)

// DeltaSharing reads every file of a Delta Sharing table.
type DeltaSharing struct {
	Profile string // path of the profile file
	Share   string
	Schema  string
	Table   string
}

// ParseDelta parses "PROFILE#SHARE.SCHEMA.TABLE".
func ParseDelta(arg string) (DeltaSharing, error) {
	profile, ref, ok := strings.Cut(arg, "#")
	parts := strings.Split(ref, ".")
	if !ok || profile == "" || len(parts) != 3 {
		return DeltaSharing{}, fmt.Errorf("delta source %q: want PROFILE#SHARE.SCHEMA.TABLE", arg)
	}
	for _, p := range parts {
		if p == "" {
			return DeltaSharing{}, fmt.Errorf("delta source %q: empty table reference part", arg)
		}
	}
	return DeltaSharing{Profile: profile, Share: parts[0], Schema: parts[1], Table: parts[2]}, nil
}

func (s DeltaSharing) Name() string {
	return "delta:" + s.Share + "." + s.Schema + "." + s.Table
}

func (s DeltaSharing) Load(ctx context.Context) (Dataset, error) {
	profile, err := os.ReadFile(s.Profile)
	if err != nil {
		return Dataset{}, fmt.Errorf("read sharing profile: %w", err)
	}
	ds, err := delta_sharing.NewSharingClientFromString(string(profile))
	if err != nil {
		return Dataset{}, fmt.Errorf("create sharing client: %w", err)
	}

	table := delta_sharing.Table{Name: s.Table, Share: s.Share, Schema: s.Schema}
	resp, err := ds.ListFilesInTable(ctx, table)
	if err != nil {
		return Dataset{}, fmt.Errorf("list files of %s: %w", s.Name(), err)
	}

	out := Dataset{Name: s.Table}
	for _, f := range resp.AddFiles {
		tbl, err := delta_sharing.LoadArrowTable(ctx, ds, table, f.Id)
		if err != nil {
			return Dataset{}, fmt.Errorf("load file %s: %w", f.Id, err)
		}
		cols, rows, err := arrowRows(tbl)
		tbl.Release()
		if err != nil {
			return Dataset{}, fmt.Errorf("convert file %s: %w", f.Id, err)
		}
		if out.Columns == nil {
			out.Columns = cols
		}
		out.Rows = append(out.Rows, rows...)
	}
	return out, nil
}
