package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/braunma/switchport-audit/pkg/analyzer"
	"github.com/braunma/switchport-audit/pkg/utils"
)

// Format selects how a result is rendered
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text, yaml or json)", name)
	}
}

// Renderer writes analysis results to an output stream
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render writes the result in the given format
func (r *Renderer) Render(result *analyzer.Result, format Format) error {
	if result == nil {
		result = &analyzer.Result{}
	}

	switch format {
	case FormatText:
		return r.renderText(result)
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode YAML report: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode JSON report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func (r *Renderer) renderText(result *analyzer.Result) error {
	bold := color.New(color.Bold).SprintFunc()
	s := result.Stats

	fmt.Fprintln(r.out, bold("Summary"))
	fmt.Fprintf(r.out, "  Devices: %d  Ports: %d  Trunk ports: %d  Networks analyzed: %d\n",
		s.Devices, s.Ports, s.TrunkCandidates, s.CandidateNetworks)
	fmt.Fprintf(r.out, "  Trunk links: %d  (uplinks skipped: %d unknown peer, %d missing port, %d not trunk)\n",
		s.LinksDiscovered, s.UplinksMissingPeer, s.UplinksNoPeerPort, s.UplinksNotTrunk)

	if len(result.Links) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, bold("Trunk links"))
		w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  UPSTREAM\tPORT\tDOWNSTREAM\tPORT")
		for _, l := range result.Links {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", l.A.DeviceName, l.A.PortName, l.B.DeviceName, l.B.PortName)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("failed to write links: %w", err)
		}
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%s (%d)\n", bold("VLAN mismatches"), len(result.Mismatches))
	for _, issue := range result.Mismatches {
		fmt.Fprintf(r.out, "  [%s] %s [%s] <-> %s [%s]\n",
			utils.Colorize(string(issue.Confidence), string(issue.Confidence)),
			issue.Link.A.DeviceName, issue.Link.A.PortName, issue.Link.B.DeviceName, issue.Link.B.PortName)
		for _, m := range issue.Mismatches {
			fmt.Fprintf(r.out, "    - %s (%.0f%% of trunks): %s\n",
				utils.Colorize(string(m.Confidence), string(m.Confidence)), m.TrunkShare*100, m.Recommendation)
		}
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%s (%d)\n", bold("Profile suggestions"), len(result.Suggestions))
	for _, sg := range result.Suggestions {
		fmt.Fprintf(r.out, "  [%s] %s %q (%s, %d ports)\n",
			utils.Colorize(string(sg.Severity), string(sg.Severity)), sg.Type, sg.ProfileName, sg.Category, len(sg.Ports))
		fmt.Fprintf(r.out, "    %s\n", sg.Message)
		fmt.Fprintf(r.out, "    ports: %s\n", utils.JoinLimited(portLabels(sg.Ports), 6))
	}

	if len(result.PortFindings) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "%s (%d)\n", bold("Port findings"), len(result.PortFindings))
		for _, f := range result.PortFindings {
			fmt.Fprintf(r.out, "  [%s] %s: %s\n", utils.Colorize(string(f.Severity), string(f.Severity)), f.Rule, f.Message)
		}
	}

	return nil
}

func portLabels(refs []analyzer.PortRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, fmt.Sprintf("%s [%s]", r.DeviceName, r.PortName))
	}
	return out
}
