package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is one background note on the method behind shiftscan.
type Topic struct {
	Title       string
	Subtitle    string
	Explanation string
}

var topics = []Topic{
	{
		Title:    "What the tool looks at.",
		Subtitle: "Side-chain CH cross peaks, two numbers per peak.",
		Explanation: `Every peak in a 1H-13C correlation spectrum is a pair of chemical
shifts: the proton shift and the shift of the carbon it sits on.
Side-chain positions cluster in well-known regions of that plane:
methyls around 0.5-1.5 / 15-25 ppm, aromatic ring CH around
6.5-7.5 / 115-135 ppm.

Shiftscan works entirely on those two numbers. It never needs the
full spectrum, just the picked peak coordinates:

    shiftscan assign 7.04 131.2

No assignment software, no spectrometer format. Two floats in,
a ranked list out.`,
	},
	{
		Title:    "The reference model.",
		Subtitle: "One Gaussian per characterized side-chain position.",
		Explanation: `The built-in table holds 25 characterized positions across nine
amino acid types: the methyls of Ala, Ile, Leu, Thr, Val, and Met,
and the aromatic ring CH of Phe, Trp, Tyr, and His. Each position
carries a mean and a standard deviation in both dimensions,
aggregated from assigned protein spectra.

A position is modeled as a bivariate normal distribution with a
diagonal covariance: the proton and carbon deviations are treated
as independent. That is deliberately simple - two sigmas per
position describe the cloud, and the table stays printable:

    shiftscan table --type Phe`,
	},
	{
		Title:    "How a peak is scored.",
		Subtitle: "Best-matching position wins; types compete with densities.",
		Explanation: `For an observed peak, shiftscan evaluates the Gaussian density of
every reference position at that coordinate. A type with several
positions (the five ring CH of Trp, say) is represented by its
best-matching position: the maximum density, not the sum.

The maximum matters. A peak sitting exactly on the Trp zeta2 mean
should not be diluted by the four other ring positions being far
away - any single plausible position is enough to keep the type in
the running.`,
	},
	{
		Title:    "From densities to probabilities.",
		Subtitle: "Normalize across types; admit total ignorance honestly.",
		Explanation: `The per-type densities are normalized to sum to one, which reads
as a posterior over types under a uniform prior. The ranked table
shows exactly that.

One edge matters: a coordinate far from every reference cloud
underflows to zero density everywhere. Normalizing noise would
invent confidence, so shiftscan reports all probabilities as zero
and says the ranking is uninformative. A ranked list you cannot
trust is worse than an honest shrug.`,
	},
	{
		Title:    "Chemical shift perturbation.",
		Subtitle: "One number for how far a peak moved.",
		Explanation: `During a titration, a peak's position in the free and bound state
differs in both dimensions. The combined perturbation folds both
into a single distance:

    CSP = sqrt( wH * dH^2 + wC * dC^2 )

where dH and dC are the absolute shift changes. Residues are then
ranked by CSP to map the binding surface: the peaks that move the
most are closest to the interaction site.

    shiftscan csp 7.20 131.5 7.25 131.8 --region aromatic --explain`,
	},
	{
		Title:    "Why the carbon weight depends on the region.",
		Subtitle: "0.34 for aliphatic carbons, 0.07 for aromatic ones.",
		Explanation: `Proton and carbon shifts live on very different scales, so the
carbon delta must be scaled before the two are combined. The factor
compensates for the relative shift dispersion: it shrinks a carbon
change to what an equally significant proton change would look like.

Aliphatic and aromatic carbons disperse differently, hence two
weights. The proton weight stays at 1.00; the carbon weight is 0.34
in the aliphatic region and 0.07 in the aromatic region, following
the common convention in the CSP literature. Both are overridable
per project in shiftscan.toml if your system calls for different
scaling.`,
	},
	{
		Title:    "Titration lists and trust.",
		Subtitle: "Bad rows are reported, not silently eaten.",
		Explanation: `Batch mode reads a five-column list: residue id, then the proton
and carbon shifts of both states. Real peak lists contain comments,
blank lines, and the occasional mangled row. Shiftscan skips what
it cannot parse and reports each skip with a file, line, and column,
so the output never silently shrinks:

    shiftscan batch titration.txt --assign --strict

--strict turns any reported problem into a failure, for pipelines
where a shorter output table must never pass unnoticed.`,
	},
}

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Background on the method behind shiftscan",
	Long: `Display background notes on the analysis shiftscan performs: the
reference model, the scoring rule, and the perturbation weighting.

Examples:
  shiftscan about              # list all topics
  shiftscan about --explain 5  # explain topic 5 in detail
  shiftscan about -e 5         # same, short form
  shiftscan about --explain-all # show all topics with explanations`,
	Args: cobra.NoArgs,
	RunE: runAbout,
}

func init() {
	aboutCmd.Flags().IntP("explain", "e", 0, "explain topic N (1-7) in detail")
	aboutCmd.Flags().Bool("explain-all", false, "show all topics with explanations")
}

func runAbout(cmd *cobra.Command, _ []string) error {
	explain, err := cmd.Flags().GetInt("explain")
	if err != nil {
		return fmt.Errorf("failed to get explain flag: %w", err)
	}

	explainAll, err := cmd.Flags().GetBool("explain-all")
	if err != nil {
		return fmt.Errorf("failed to get explain-all flag: %w", err)
	}

	if explain > 0 {
		return printTopic(explain)
	}

	if explainAll {
		return printAllTopics()
	}

	return printAbout()
}

func printAbout() error {
	fmt.Println()
	fmt.Println("About shiftscan")
	fmt.Println(strings.Repeat("=", 16))
	fmt.Println()

	for i, tp := range topics {
		fmt.Printf("%2d. %s\n", i+1, tp.Title)
		fmt.Printf("    (%s)\n", tp.Subtitle)
		fmt.Println()
	}

	fmt.Println("Use --explain N to learn more about a specific topic.")
	return nil
}

func printTopic(n int) error {
	if n < 1 || n > len(topics) {
		return fmt.Errorf("topic number must be between 1 and %d, got %d", len(topics), n)
	}

	tp := topics[n-1]

	fmt.Println()
	fmt.Printf("Topic %d: %s\n", n, tp.Title)
	fmt.Printf("(%s)\n", tp.Subtitle)
	fmt.Println(strings.Repeat("-", 60))
	fmt.Println()
	fmt.Println(tp.Explanation)
	fmt.Println()

	return nil
}

func printAllTopics() error {
	fmt.Println()
	fmt.Println("About shiftscan: the full tour")
	fmt.Println(strings.Repeat("=", 30))

	for i, tp := range topics {
		fmt.Println()
		fmt.Printf("Topic %d: %s\n", i+1, tp.Title)
		fmt.Printf("(%s)\n", tp.Subtitle)
		fmt.Println(strings.Repeat("-", 60))
		fmt.Println()
		fmt.Println(tp.Explanation)
	}

	fmt.Println()
	return nil
}
