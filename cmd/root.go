package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/qmodel/queuenet/pkg/compiler"
	"github.com/qmodel/queuenet/pkg/datasets"
	"github.com/qmodel/queuenet/pkg/diagram"
	"github.com/qmodel/queuenet/pkg/model"
	"github.com/spf13/cobra"
)

var (
	modelFile    string
	useSample    bool
	outputFile   string
	diagramFile  string
	validateOnly bool
	compact      bool
)

var rootCmd = &cobra.Command{
	Use:   "queuenet",
	Short: "Queueing-network model compiler",
	Long: `A CLI tool that turns a declarative queueing-network description into
discrete-event simulation parameters.

This tool reads a process model (activities, resource pools, timing
distributions and routing probabilities) from a JSON or YAML document,
validates its routing consistency, and compiles it into the index-based
parameter bundle a network simulation engine consumes. It can also render
the validated model as a Graphviz flow diagram.`,
	SilenceUsage: true,
	RunE:         runPipeline,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&modelFile, "model", "m", "", "Path to the model document (.json, .yaml or .yml)")
	rootCmd.Flags().BoolVar(&useSample, "sample", false, "Use the bundled call-centre model instead of a file")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write compiled parameters to this file instead of stdout")
	rootCmd.Flags().StringVarP(&diagramFile, "diagram", "d", "", "Write a Graphviz DOT rendering of the model to this file")
	rootCmd.Flags().BoolVar(&validateOnly, "validate-only", false, "Stop after validation, do not compile")
	rootCmd.Flags().BoolVar(&compact, "compact", false, "Emit compact JSON instead of indented output")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	m, err := loadModel()
	if err != nil {
		return err
	}

	fingerprint, err := m.Fingerprint()
	if err != nil {
		return fmt.Errorf("failed to fingerprint model: %w", err)
	}

	fmt.Printf("Validated model %q\n", m.Name)
	fmt.Printf("  - Activities: %d\n", len(m.Activities))
	fmt.Printf("  - Transitions: %d\n", len(m.Transitions))
	fmt.Printf("  - Entry points: %d\n", len(m.EntryPoints()))
	fmt.Printf("  - Fingerprint: %s\n", fingerprint)
	for _, w := range m.Warnings() {
		fmt.Printf("  ! warning: %s\n", w.Message)
	}
	fmt.Println()

	if diagramFile != "" {
		dot := diagram.NewGenerator().GenerateDOT(m)
		if err := os.WriteFile(diagramFile, []byte(dot), 0644); err != nil {
			return fmt.Errorf("failed to write diagram: %w", err)
		}
		fmt.Printf("Wrote flow diagram to %s\n", diagramFile)
	}

	if validateOnly {
		return nil
	}

	params, err := compiler.Compile(m)
	if err != nil {
		return fmt.Errorf("failed to compile model: %w", err)
	}

	data, err := encodeParams(params)
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write parameters: %w", err)
	}
	fmt.Printf("Wrote simulation parameters for %d node(s) to %s\n", params.NodeCount(), outputFile)

	return nil
}

// loadModel resolves the model source flags: an explicit document or the
// bundled sample.
func loadModel() (*model.ProcessModel, error) {
	if useSample {
		return datasets.CallCentre(), nil
	}
	if modelFile == "" {
		return nil, fmt.Errorf("no model given: pass --model <file> or --sample")
	}

	m, err := model.Load(modelFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	return m, nil
}

func encodeParams(params *compiler.Params) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if compact {
		data, err = json.Marshal(params)
	} else {
		data, err = json.MarshalIndent(params, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameters: %w", err)
	}
	return data, nil
}
