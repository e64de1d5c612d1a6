package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/leafcare/internal/classifier"
	"github.com/blackwell-systems/leafcare/internal/output"
)

var (
	classifyFamily     string
	classifyGenus      string
	classifyScientific string
	classifyList       bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify [common name]",
	Short: "Show which care archetype a plant would get",
	Long: `Classify a plant without registering it.

Rules are tried in order and the first hit wins: genus, family, scientific
name, common-name keywords, partial family. Anything else falls back to the
generic archetype.`,
	Example: `  leafcare classify "string of pearls"
  leafcare classify --genus Phalaenopsis
  leafcare classify --list`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyFamily, "family", "", "botanical family")
	classifyCmd.Flags().StringVar(&classifyGenus, "genus", "", "botanical genus")
	classifyCmd.Flags().StringVar(&classifyScientific, "scientific", "", "scientific name")
	classifyCmd.Flags().BoolVar(&classifyList, "list", false, "list all archetypes")

	RootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	if classifyList {
		fmt.Printf("%-18s %-7s %-7s %s\n", "Archetype", "Water", "Feed", "Description")
		fmt.Println(strings.Repeat("─", 80))
		for _, a := range classifier.Archetypes() {
			fmt.Printf("%-18s %-7s %-7s %s\n", a.Tag,
				fmt.Sprintf("%dd", a.WateringDays), fmt.Sprintf("%dd", a.FertilizingDays), a.Description)
		}
		return nil
	}

	commonName := strings.Join(args, " ")
	if commonName == "" && classifyFamily == "" && classifyGenus == "" && classifyScientific == "" {
		return fmt.Errorf("nothing to classify: give a common name or --family, --genus or --scientific")
	}

	m := classifier.Classify(classifyFamily, classifyGenus, commonName, classifyScientific)
	fmt.Print(output.RenderClassification(m))
	return nil
}
