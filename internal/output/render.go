package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/gcp-hcp/gcphcp/internal/api"
)

// Render writes the result to w in the requested format. It either
// fully succeeds or returns an error before producing partial output
// for the structured formats.
func Render(w io.Writer, res *api.Result, format Format) error {
	switch format {
	case JSON:
		return renderJSON(w, res)
	case YAML:
		return renderYAML(w, res)
	case CSV:
		return renderCSV(w, res)
	case Value:
		return renderValue(w, res)
	default:
		return renderTable(w, res)
	}
}

// columns returns field names in first-seen order across all items.
func columns(items []*api.Document) []string {
	var cols []string
	seen := make(map[string]bool)
	for _, item := range items {
		for _, k := range item.Keys() {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	return cols
}

func renderTable(w io.Writer, res *api.Result) error {
	items := res.Items()
	if len(items) == 0 {
		if res.IsCollection() {
			_, err := fmt.Fprintln(w, "No resources found.")
			return err
		}
		return nil
	}

	// A single item renders as a field/value listing, a collection as
	// one row per item.
	if !res.IsCollection() {
		table := newPlainTable(w)
		for _, k := range items[0].Keys() {
			table.Append([]string{k, items[0].String(k)})
		}
		table.Render()
		return nil
	}

	cols := columns(items)
	table := newPlainTable(w)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = strings.ToUpper(c)
	}
	table.SetHeader(header)
	for _, item := range items {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = item.String(c)
		}
		table.Append(row)
	}
	table.Render()
	return nil
}

// newPlainTable configures a borderless left-aligned table in the
// gcloud style.
func newPlainTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetRowSeparator("")
	table.SetColumnSeparator("")
	table.SetCenterSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}

func renderJSON(w io.Writer, res *api.Result) error {
	var payload any
	switch {
	case res.IsCollection():
		items := res.Items()
		if items == nil {
			items = []*api.Document{}
		}
		payload = items
	case res.Item() != nil:
		payload = res.Item()
	default:
		return nil
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func renderYAML(w io.Writer, res *api.Result) error {
	var node *yaml.Node
	switch {
	case res.IsCollection():
		node = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range res.Items() {
			n, err := item.YAMLNode()
			if err != nil {
				return fmt.Errorf("failed to render YAML: %w", err)
			}
			node.Content = append(node.Content, n)
		}
	case res.Item() != nil:
		n, err := res.Item().YAMLNode()
		if err != nil {
			return fmt.Errorf("failed to render YAML: %w", err)
		}
		node = n
	default:
		return nil
	}
	data, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("failed to render YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func renderCSV(w io.Writer, res *api.Result) error {
	items := res.Items()
	if len(items) == 0 {
		return nil
	}
	cols := columns(items)
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("failed to render CSV: %w", err)
	}
	for _, item := range items {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = item.String(c)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to render CSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// renderValue emits tab-separated raw values, one line per item, no
// header. A single scalar field collapses to one bare value per line.
func renderValue(w io.Writer, res *api.Result) error {
	for _, item := range res.Items() {
		values := make([]string, 0, item.Len())
		for _, k := range item.Keys() {
			values = append(values, item.String(k))
		}
		if _, err := fmt.Fprintln(w, strings.Join(values, "\t")); err != nil {
			return err
		}
	}
	return nil
}
