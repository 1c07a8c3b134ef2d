package refmodel

// DefaultEntries returns the built-in side-chain reference set: methyl and
// aromatic CH positions with shift statistics aggregated from assigned
// protein spectra. Values are (mean, sigma) pairs in ppm, proton dimension
// first. Positions follow the usual Greek-letter naming.
func DefaultEntries() []Entry {
	return []Entry{
		{AminoAcid: "Ala", Position: "β", MeanH: 1.353, SigmaH: 0.276, MeanC: 19.028, SigmaC: 2.911},
		{AminoAcid: "Ile", Position: "δ", MeanH: 0.674, SigmaH: 0.326, MeanC: 13.489, SigmaC: 3.318},
		{AminoAcid: "Ile", Position: "γ", MeanH: 0.77, SigmaH: 0.302, MeanC: 17.601, SigmaC: 3.15},
		{AminoAcid: "Leu", Position: "δ1", MeanH: 0.747, SigmaH: 0.327, MeanC: 24.654, SigmaC: 2.01},
		{AminoAcid: "Leu", Position: "δ2", MeanH: 0.729, SigmaH: 0.383, MeanC: 24.13, SigmaC: 2.085},
		{AminoAcid: "Thr", Position: "γ", MeanH: 1.139, SigmaH: 0.273, MeanC: 21.592, SigmaC: 1.855},
		{AminoAcid: "Val", Position: "γ1", MeanH: 0.819, SigmaH: 0.328, MeanC: 21.534, SigmaC: 2.344},
		{AminoAcid: "Val", Position: "γ2", MeanH: 0.802, SigmaH: 0.419, MeanC: 21.346, SigmaC: 2.44},
		{AminoAcid: "Met", Position: "ε", MeanH: 1.787, SigmaH: 1.469, MeanC: 17.238, SigmaC: 3.992},
		{AminoAcid: "Phe", Position: "δ1", MeanH: 7.04, SigmaH: 0.393, MeanC: 131.207, SigmaC: 5.749},
		{AminoAcid: "Phe", Position: "δ2", MeanH: 7.041, SigmaH: 0.405, MeanC: 131.344, SigmaC: 4.401},
		{AminoAcid: "Phe", Position: "ε1", MeanH: 7.065, SigmaH: 0.444, MeanC: 130.351, SigmaC: 5.705},
		{AminoAcid: "Phe", Position: "ε2", MeanH: 7.064, SigmaH: 0.439, MeanC: 130.544, SigmaC: 4.096},
		{AminoAcid: "Phe", Position: "ζ", MeanH: 6.995, SigmaH: 0.702, MeanC: 129.035, SigmaC: 4.103},
		{AminoAcid: "Trp", Position: "δ", MeanH: 7.128, SigmaH: 0.36, MeanC: 126.35, SigmaC: 4.321},
		{AminoAcid: "Trp", Position: "ε3", MeanH: 7.302, SigmaH: 0.514, MeanC: 120.216, SigmaC: 5.345},
		{AminoAcid: "Trp", Position: "η2", MeanH: 6.958, SigmaH: 0.447, MeanC: 123.566, SigmaC: 4.837},
		{AminoAcid: "Trp", Position: "ζ2", MeanH: 7.27, SigmaH: 0.404, MeanC: 114.076, SigmaC: 4.446},
		{AminoAcid: "Trp", Position: "ζ3", MeanH: 6.854, SigmaH: 0.464, MeanC: 121.186, SigmaC: 4.493},
		{AminoAcid: "Tyr", Position: "δ1", MeanH: 6.921, SigmaH: 0.367, MeanC: 132.388, SigmaC: 5.213},
		{AminoAcid: "Tyr", Position: "δ2", MeanH: 6.918, SigmaH: 0.371, MeanC: 132.395, SigmaC: 5.177},
		{AminoAcid: "Tyr", Position: "ε1", MeanH: 6.691, SigmaH: 0.303, MeanC: 117.748, SigmaC: 3.941},
		{AminoAcid: "Tyr", Position: "ε2", MeanH: 6.692, SigmaH: 0.313, MeanC: 117.79, SigmaC: 3.221},
		{AminoAcid: "His", Position: "ε2", MeanH: 7.138, SigmaH: 3.154, MeanC: 119.91, SigmaC: 5.5},
		{AminoAcid: "His", Position: "ε", MeanH: 7.841, SigmaH: 2.454, MeanC: 137.258, SigmaC: 5.512},
	}
}

var defaultTable = mustTable(DefaultEntries())

// Default returns the built-in reference table. The table is validated once
// at package initialization and shared by all callers; it must never be
// mutated.
func Default() *Table {
	return defaultTable
}

func mustTable(entries []Entry) *Table {
	t, err := NewTable(entries)
	if err != nil {
		// ошибка в зашитых данных, это баг компоновки, не runtime-условие
		panic(err)
	}
	return t
}
