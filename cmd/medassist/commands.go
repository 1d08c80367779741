package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Skufu/medassist/internal/chat"
	"github.com/Skufu/medassist/internal/docconv"
	"github.com/Skufu/medassist/internal/interactions"
	"github.com/Skufu/medassist/internal/knowledge"
	"github.com/Skufu/medassist/internal/labs"
	"github.com/Skufu/medassist/internal/risk"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "medassist",
		Short:         "Lab extraction, risk scoring and medication checks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(riskCmd())
	rootCmd.AddCommand(interactionsCmd())
	rootCmd.AddCommand(askCmd())
	return rootCmd
}

type fileLabs struct {
	File         string             `json:"file"`
	Measurements []labs.Measurement `json:"measurements"`
	Abnormal     []labs.Measurement `json:"abnormal"`
	Sections     []string           `json:"sections"`
	Error        string             `json:"error,omitempty"`
}

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract FILE...",
		Short: "Extract lab values from report files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extractor := labs.NewExtractor(knowledge.Default())
			results := make([]fileLabs, 0, len(args))
			for _, path := range args {
				res := fileLabs{File: path}
				text, err := readDocument(path)
				if err != nil {
					res.Error = err.Error()
					results = append(results, res)
					continue
				}
				res.Measurements = extractor.ExtractAndClassify(text)
				res.Abnormal = labs.Abnormal(res.Measurements)
				res.Sections = labs.DetectSections(text)
				results = append(results, res)
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}
}

func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return docconv.Convert(filepath.Base(path), data)
}

func riskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Score a patient snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			symptoms, _ := cmd.Flags().GetStringSlice("symptom")
			conditions, _ := cmd.Flags().GetStringSlice("condition")
			v := risk.DefaultVitals()
			v.HeartRate, _ = cmd.Flags().GetFloat64("heart-rate")
			v.Temperature, _ = cmd.Flags().GetFloat64("temperature")
			v.OxygenSat, _ = cmd.Flags().GetFloat64("spo2")
			v.BloodPressure, _ = cmd.Flags().GetString("bp")

			if problems := v.Validate(); len(problems) > 0 {
				return errors.New(strings.Join(problems, "; "))
			}
			return writeJSON(cmd.OutOrStdout(), risk.Score(symptoms, v, conditions))
		},
	}

	d := risk.DefaultVitals()
	cmd.Flags().StringSlice("symptom", nil, "Symptom identifier, repeatable (e.g. chestPain)")
	cmd.Flags().StringSlice("condition", nil, "Condition identifier, repeatable (e.g. hypertension)")
	cmd.Flags().Float64("heart-rate", d.HeartRate, "Heart rate in bpm")
	cmd.Flags().Float64("temperature", d.Temperature, "Body temperature in °F")
	cmd.Flags().Float64("spo2", d.OxygenSat, "Oxygen saturation in percent")
	cmd.Flags().String("bp", d.BloodPressure, "Blood pressure as systolic/diastolic")
	return cmd
}

func interactionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactions \"MED, MED, ...\"",
		Short: "Check a comma separated medication list for known interactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meds := interactions.ParseList(args[0])
			out := cmd.OutOrStdout()
			if len(meds) == 0 {
				return errors.New("no medications given")
			}

			found := interactions.NewChecker(knowledge.Default()).Check(meds)
			if len(found) == 0 {
				fmt.Fprintln(out, "No known interactions found.")
				return nil
			}
			for _, msg := range found {
				fmt.Fprintln(out, msg)
			}
			return nil
		},
	}
}

func askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask QUESTION",
		Short: "Answer a free-text question with the rule-based assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracked, _ := cmd.Flags().GetStringSlice("symptom")
			emergency, _ := cmd.Flags().GetBool("emergency-triage")
			scope, _ := cmd.Flags().GetString("scope")

			kb := knowledge.Default()
			router := chat.NewRouter(kb, interactions.NewChecker(kb), chat.Options{
				EmergencyTriage: emergency,
				SymptomScope:    chat.SymptomScope(scope),
			})
			fmt.Fprintln(cmd.OutOrStdout(), router.Respond(strings.Join(args, " "), tracked))
			return nil
		},
	}

	cmd.Flags().StringSlice("symptom", nil, "Tracked symptom, repeatable")
	cmd.Flags().Bool("emergency-triage", false, "Answer emergency phrases before anything else")
	cmd.Flags().String("scope", string(chat.ScopeTracked), "Symptom scope: tracked or all")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
