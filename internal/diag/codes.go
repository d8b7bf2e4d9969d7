package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Lowering of analyzer trees
	SynInfo                Code = 2000
	SynUnsupportedAccessor Code = 2001
	SynUnsupportedSyntax   Code = 2002
	SynMalformedNode       Code = 2003

	// Name flattening
	NamInfo      Code = 3000
	NamCollision Code = 3001

	// Partial merge
	MrgInfo             Code = 3100
	MrgDuplicateDecl    Code = 3101
	MrgDuplicateMember  Code = 3102
	MrgCategoryMismatch Code = 3103
	MrgPartialEnum      Code = 3104

	// C emission
	EmtInfo          Code = 4000
	EmtValueCycle    Code = 4001
	EmtUnsupported   Code = 4002
	EmtGenericType   Code = 4003
	EmtUnknownMember Code = 4004

	// Project configuration
	CfgInfo           Code = 5000
	CfgDialect        Code = 5001
	CfgPlatform       Code = 5002
	CfgOutputKind     Code = 5003
	CfgManifest       Code = 5004
	CfgReferenceCycle Code = 5005
	CfgDependency     Code = 5006

	// I/O
	IOLoadUnitError    Code = 6001
	IOWriteOutputError Code = 6002

	ObsInfo    Code = 7000
	ObsTimings Code = 7001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		SynInfo:                "Lowering information",
		SynUnsupportedAccessor: "Unsupported property accessor",
		SynUnsupportedSyntax:   "Unsupported syntax",
		SynMalformedNode:       "Malformed analyzer node",
		NamInfo:                "Naming information",
		NamCollision:           "Flattened name collision",
		MrgInfo:                "Merge information",
		MrgDuplicateDecl:       "Duplicate declaration",
		MrgDuplicateMember:     "Duplicate member in partial declaration",
		MrgCategoryMismatch:    "Partial declaration category mismatch",
		MrgPartialEnum:         "Enum cannot be partial",
		EmtInfo:                "Emission information",
		EmtValueCycle:          "Value containment cycle",
		EmtUnsupported:         "Unsupported construct in emission",
		EmtGenericType:         "Generic type reached the backend",
		EmtUnknownMember:       "Unknown member reference",
		CfgInfo:                "Project information",
		CfgDialect:             "Unsupported language version",
		CfgPlatform:            "Unsupported platform",
		CfgOutputKind:          "Unsupported project output kind",
		CfgManifest:            "Invalid project manifest",
		CfgReferenceCycle:      "Project reference cycle",
		CfgDependency:          "Referenced project failed",
		IOLoadUnitError:        "I/O load unit error",
		IOWriteOutputError:     "I/O write output error",
		ObsInfo:                "Observability information",
		ObsTimings:             "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 3100:
		return fmt.Sprintf("NAM%04d", ic)
	case ic >= 3100 && ic < 4000:
		return fmt.Sprintf("MRG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("EMT%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

// MemberScoped reports whether an error of this code only drops the member
// it names. Lowering (SYN) errors are; everything else fails the project.
func (c Code) MemberScoped() bool {
	return c >= SynInfo && c < NamInfo
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
