package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/replicanet/internal/core/observability/log"
	"github.com/zeusync/replicanet/internal/core/replica"
	"github.com/zeusync/replicanet/internal/core/replica/component"
	"github.com/zeusync/replicanet/internal/core/replica/session"
	"github.com/zeusync/replicanet/internal/injector"
)

// script is the input of decode: the frames one peer received, in order.
type script struct {
	Frames []scriptFrame `yaml:"frames"`
}

type scriptFrame struct {
	Op         string `yaml:"op"`
	TemplateID int32  `yaml:"template_id"`
	NetworkID  uint16 `yaml:"network_id"`
	Data       string `yaml:"data"`
}

func (f scriptFrame) frameOp() (session.FrameOp, error) {
	switch strings.ToLower(f.Op) {
	case "construct", "construction":
		return session.OpConstruct, nil
	case "serialize", "serialization":
		return session.OpSerialize, nil
	case "destruct", "destruction":
		return session.OpDestruct, nil
	default:
		return 0, fmt.Errorf("unknown op %q", f.Op)
	}
}

// decodeHex accepts whitespace between byte pairs.
func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.Join(strings.Fields(s), ""))
}

func readScript(r io.Reader) (script, error) {
	var s script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return script{}, fmt.Errorf("decode script: %w", err)
	}
	return s, nil
}

type componentReport struct {
	Kind         uint32 `json:"kind"`
	Name         string `json:"name"`
	Payload      any    `json:"payload"`
	PayloadError string `json:"payload_error,omitempty"`
}

// newComponentReport keeps a payload JSON cannot express (NaN or infinite
// floats) from failing the whole run; only that component loses its body.
func newComponentReport(p component.Payload) componentReport {
	report := componentReport{Kind: uint32(p.Kind()), Name: p.Kind().String(), Payload: p}
	if _, err := json.Marshal(p); err != nil {
		report.Payload = nil
		report.PayloadError = err.Error()
	}
	return report
}

type frameReport struct {
	Index        int               `json:"index"`
	Op           string            `json:"op"`
	NetworkID    uint16            `json:"network_id"`
	TemplateID   int32             `json:"template_id,omitempty"`
	Status       string            `json:"status"`
	Components   []componentReport `json:"components,omitempty"`
	Replayed     []frameReport     `json:"replayed,omitempty"`
	TrailingBits uint64            `json:"trailing_bits,omitempty"`
	Error        string            `json:"error,omitempty"`
	Recoverable  bool              `json:"recoverable,omitempty"`
}

func serializationReport(index int, f *replica.SerializationFrame) frameReport {
	report := frameReport{
		Index:        index,
		Op:           session.OpSerialize.String(),
		NetworkID:    f.NetworkID,
		TrailingBits: f.TrailingBits,
	}
	for _, c := range f.Components {
		report.Components = append(report.Components, newComponentReport(c))
	}
	return report
}

func constructionReport(index int, f *replica.ConstructionFrame) frameReport {
	report := frameReport{
		Index:        index,
		Op:           session.OpConstruct.String(),
		NetworkID:    f.NetworkID,
		TemplateID:   f.TemplateID,
		TrailingBits: f.TrailingBits,
	}
	for _, c := range f.Components {
		report.Components = append(report.Components, newComponentReport(c))
	}
	for _, s := range f.Replayed {
		replayed := serializationReport(index, s)
		replayed.Status = replica.StatusKnown.String()
		report.Replayed = append(report.Replayed, replayed)
	}
	return report
}

func decodeCmd(root *rootOptions) *cobra.Command {
	var (
		strict          bool
		deferUnresolved bool
	)

	cmd := &cobra.Command{
		Use:   "decode <script.yaml|->",
		Short: "Decode a script of frames through one connection",
		Long: `Decode every frame of a script in order, as one peer would, and print
one JSON report per frame.

Script format:
  frames:
    - op: construct        # construct, serialize or destruct
      template_id: 1
      data: "00 07 00"     # hex, whitespace allowed
    - op: serialize
      network_id: 7
      data: "8000000100"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strict") {
				cfg.Replica.StrictTrailing = strict
			}
			if cmd.Flags().Changed("defer") {
				cfg.Replica.DeferUnresolved = deferUnresolved
			}

			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer f.Close()
				in = f
			}
			s, err := readScript(in)
			if err != nil {
				return err
			}

			app, cleanup, err := injector.InitializeApp(cfg)
			if err != nil {
				return err
			}
			defer cleanup()
			defer func() { _ = app.Log.Sync() }()

			reports, err := runScript(cmd, app, s)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail frames with unread trailing bytes")
	cmd.Flags().BoolVar(&deferUnresolved, "defer", false, "Queue serializations of unknown network ids until constructed")

	return cmd
}

// runScript feeds the frames one at a time so every report carries the
// status of its network id right after that frame.
func runScript(cmd *cobra.Command, app *injector.App, s script) ([]frameReport, error) {
	conn := app.Sessions.Open()
	defer app.Sessions.Close(conn.ID())

	frames := make([]session.Frame, len(s.Frames))
	for i, f := range s.Frames {
		op, err := f.frameOp()
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		data, err := decodeHex(f.Data)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames[i] = session.Frame{
			Connection: conn.ID(),
			Op:         op,
			TemplateID: f.TemplateID,
			NetworkID:  f.NetworkID,
			Data:       data,
		}
	}

	reports := make([]frameReport, 0, len(frames))
	for i, frame := range frames {
		results, err := app.Sessions.Process(cmd.Context(), []session.Frame{frame})
		if err != nil {
			return nil, err
		}
		res := results[0]

		var report frameReport
		switch {
		case res.Construction != nil:
			report = constructionReport(i, res.Construction)
		case res.Serialization != nil:
			report = serializationReport(i, res.Serialization)
		default:
			report = frameReport{Index: i, Op: frame.Op.String(), NetworkID: frame.NetworkID, TemplateID: frame.TemplateID}
		}
		if res.Err != nil {
			report.Error = res.Err.Error()
			report.Recoverable = replica.IsRecoverable(res.Err)
			var fe *replica.FrameError
			if errors.As(res.Err, &fe) {
				report.NetworkID = fe.NetworkID
			}
			app.Log.Debug("frame failed", log.Int("index", i), log.Error(res.Err))
		}
		report.Status = conn.Status(report.NetworkID).String()
		reports = append(reports, report)
	}
	return reports, nil
}
