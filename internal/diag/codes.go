package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Файловые
	IOInfo         Code = 1000
	IOReadFailed   Code = 1001
	IOCreateFailed Code = 1002
	IOWriteFailed  Code = 1003
	IOEmptyInput   Code = 1004

	// Разбор peak-списков
	ParseInfo          Code = 2000
	ParseShortLine     Code = 2001
	ParseBadNumber     Code = 2002
	ParseNonFinite     Code = 2003
	ParseEmptyID       Code = 2004
	ParseDuplicateID   Code = 2005
	ParseExtraIgnored  Code = 2006
	ParseNoDataRows    Code = 2007
	ParseBadFieldCount Code = 2008

	// Модель и параметры
	ModelInfo          Code = 3000
	ModelBadSigma      Code = 3001
	ModelDuplicateRef  Code = 3002
	ModelUnknownRegion Code = 3003
	ModelBadWeight     Code = 3004

	// Наблюдаемость
	ObsInfo    Code = 4000
	ObsTimings Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	IOInfo:         "input/output note",
	IOReadFailed:   "failed to read input file",
	IOCreateFailed: "failed to create output file",
	IOWriteFailed:  "failed to write output file",
	IOEmptyInput:   "input file is empty",

	ParseInfo:          "peak list note",
	ParseShortLine:     "line has fewer fields than required",
	ParseBadNumber:     "chemical shift is not a number",
	ParseNonFinite:     "chemical shift is not finite",
	ParseEmptyID:       "residue identifier is empty",
	ParseDuplicateID:   "residue identifier repeats",
	ParseExtraIgnored:  "extra trailing fields ignored",
	ParseNoDataRows:    "no data rows after comments and blanks",
	ParseBadFieldCount: "unexpected field count",

	ModelInfo:          "reference model note",
	ModelBadSigma:      "standard deviation must be positive",
	ModelDuplicateRef:  "duplicate reference position",
	ModelUnknownRegion: "unknown spectral region",
	ModelBadWeight:     "scaling weight must be positive",

	ObsInfo:    "observability note",
	ObsTimings: "phase timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("PARSE%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("MODEL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
