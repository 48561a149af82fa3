package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dog-breed-recommender/internal/adapters/distances/distancematrix"
	"dog-breed-recommender/internal/domain/records"
	"dog-breed-recommender/internal/domain/recommend"
	"dog-breed-recommender/internal/domain/similarity"
	"dog-breed-recommender/internal/domain/traits"
)

func newBreedsCmd(format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "breeds",
		Short: "Lista las razas conocidas del dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			type entry struct {
				Breed      string `json:"breed"`
				Translated string `json:"translated,omitempty"`
			}
			out := make([]entry, 0)
			for _, breed := range a.repo.AllBreeds() {
				e := entry{Breed: breed}
				if t := a.translate(breed); t != breed {
					e.Translated = t
				}
				out = append(out, e)
			}

			return emit(cmd.OutOrStdout(), *format, out, func() {
				for _, e := range out {
					if e.Translated != "" {
						fmt.Fprintf(cmd.OutOrStdout(), "- %s (%s)\n", e.Breed, e.Translated)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", e.Breed)
				}
			})
		},
	}
}

func newDistrictsCmd(format *string) *cobra.Command {
	var breed string
	var top int

	cmd := &cobra.Command{
		Use:   "districts",
		Short: "Top distritos por proporción de una raza",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(breed) == "" {
				return fmt.Errorf("--breed is required")
			}
			a, err := loadApp()
			if err != nil {
				return err
			}

			ranking, err := a.rec.TopDistricts(breed, top)
			if err != nil {
				return err
			}

			type entry struct {
				DistrictID int     `json:"district_id"`
				District   string  `json:"district"`
				Proportion float64 `json:"proportion"`
			}
			out := make([]entry, 0, len(ranking))
			for _, ds := range ranking {
				out = append(out, entry{
					DistrictID: ds.District.ID,
					District:   ds.District.Name,
					Proportion: ds.Proportion,
				})
			}

			return emit(cmd.OutOrStdout(), *format, out, func() {
				for _, e := range out {
					fmt.Fprintf(cmd.OutOrStdout(), "- %s (%d): %.4f\n", e.District, e.DistrictID, e.Proportion)
				}
			})
		},
	}
	cmd.Flags().StringVar(&breed, "breed", "", "raza a consultar (como figura en el dataset)")
	cmd.Flags().IntVar(&top, "top", recommend.DefaultTopK, "cantidad de distritos")
	return cmd
}

func newDemographicsCmd(format *string) *cobra.Command {
	var (
		age      int
		gender   string
		district int
		top      int
	)

	cmd := &cobra.Command{
		Use:   "demographics",
		Short: "Recomienda razas según demografía del usuario (edad, género, distrito)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			q := similarity.UserProfile{DistrictID: district}
			if age > 0 {
				q.AgeBucket = records.AgeBucket{Lo: age, Hi: age}
			}
			if g, ok := records.ParseGender(gender); ok {
				q.Gender = g
			}

			ranking, err := a.rec.RecommendBreeds(q, top)
			if err != nil {
				return err
			}
			return emitBreedScores(cmd, *format, a, ranking)
		},
	}
	cmd.Flags().IntVar(&age, "age", 0, "edad del usuario")
	cmd.Flags().StringVar(&gender, "gender", "", "género: f|m|o")
	cmd.Flags().IntVar(&district, "district", 0, "ID de distrito del usuario")
	cmd.Flags().IntVar(&top, "top", recommend.DefaultTopK, "cantidad de recomendaciones")
	return cmd
}

func newPreferenceCmd(format *string) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "preference",
		Short: "Cuestionario de preferencias (criterios AKC) y matriz de decisión",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			if a.cat == nil {
				return fmt.Errorf("breed traits dataset is required for this command")
			}

			answers, err := askPreferenceQuestions(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			scores := traits.DecisionMatrix(a.cat.Breeds(), traits.BuildWeights(answers), top)
			normalized := traits.Normalize(scores)

			type entry struct {
				Breed string  `json:"breed"`
				Score float64 `json:"score"`
			}
			out := make([]entry, 0, len(normalized))
			for _, s := range normalized {
				out = append(out, entry{Breed: s.Breed, Score: s.Score})
			}

			return emit(cmd.OutOrStdout(), *format, out, func() {
				fmt.Fprintln(cmd.OutOrStdout(), "Top breeds matching your criteria:")
				for _, e := range out {
					fmt.Fprintf(cmd.OutOrStdout(), "- %s, score: %.3f\n", e.Breed, e.Score)
				}
			})
		},
	}
	cmd.Flags().IntVar(&top, "top", recommend.DefaultTopK, "cantidad de recomendaciones")
	return cmd
}

func newTreeCmd(format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Cuestionario por árbol de decisión sobre los rasgos AKC",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			if a.cat == nil {
				return fmt.Errorf("breed traits dataset is required for this command")
			}

			tree := traits.NewTree()
			for _, b := range a.cat.Breeds() {
				tree.InsertBreed(b)
			}

			choices, err := askTreeQuestions(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			matches := tree.Decide(choices)
			return emit(cmd.OutOrStdout(), *format, matches, func() {
				if len(matches) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No breed matches that exact description.")
					return
				}
				for _, breed := range matches {
					fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", breed)
				}
			})
		},
	}
}

func newFetchDistancesCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "fetch-distances",
		Short: "Regenera la tabla de cercanía entre distritos vía la API de distancias",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			if a.cfg.DistanceAPIBaseURL == "" || a.cfg.DistanceAPIKey == "" {
				return fmt.Errorf("DOGREC_DISTANCE_API_BASE_URL and DOGREC_DISTANCE_API_KEY are required")
			}

			client, err := distancematrix.New(a.cfg.DistanceAPIBaseURL, a.cfg.DistanceAPIKey, distancematrix.DefaultTimeout)
			if err != nil {
				return err
			}

			table, err := client.FetchTable(context.Background(), a.repo.Districts())
			if err != nil {
				return err
			}

			if out == "" {
				out = a.cfg.ClosenessPath()
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := distancematrix.WriteCSV(f, table); err != nil {
				return err
			}
			a.log.Info("closeness table written", map[string]any{
				"path":  out,
				"pairs": len(table),
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "ruta de salida (default: closeness file de la config)")
	return cmd
}

func emitBreedScores(cmd *cobra.Command, format string, a *app, ranking []recommend.BreedScore) error {
	type entry struct {
		Breed      string  `json:"breed"`
		Translated string  `json:"translated,omitempty"`
		Score      float64 `json:"score"`
	}
	out := make([]entry, 0, len(ranking))
	for _, bs := range ranking {
		e := entry{Breed: bs.Breed, Score: bs.Score}
		if t := a.translate(bs.Breed); t != bs.Breed {
			e.Translated = t
		}
		out = append(out, e)
	}

	return emit(cmd.OutOrStdout(), format, out, func() {
		fmt.Fprintln(cmd.OutOrStdout(), "Top breeds:")
		for _, e := range out {
			name := e.Breed
			if e.Translated != "" {
				name = fmt.Sprintf("%s (%s)", e.Breed, e.Translated)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s, score: %.3f\n", name, e.Score)
		}
	})
}
