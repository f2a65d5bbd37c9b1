package codeforces

type ContestType string

const (
	ContestTypeCF   ContestType = "CF"
	ContestTypeIOI  ContestType = "IOI"
	ContestTypeICPC ContestType = "ICPC"
)

func (t ContestType) Valid() bool {
	switch t {
	case ContestTypeCF, ContestTypeIOI, ContestTypeICPC:
		return true
	}
	return false
}

type ContestPhase string

const (
	PhaseBefore            ContestPhase = "BEFORE"
	PhaseCoding            ContestPhase = "CODING"
	PhasePendingSystemTest ContestPhase = "PENDING_SYSTEM_TEST"
	PhaseSystemTest        ContestPhase = "SYSTEM_TEST"
	PhaseFinished          ContestPhase = "FINISHED"
)

func (p ContestPhase) Valid() bool {
	switch p {
	case PhaseBefore, PhaseCoding, PhasePendingSystemTest, PhaseSystemTest, PhaseFinished:
		return true
	}
	return false
}

type ParticipantType string

const (
	ParticipantContestant       ParticipantType = "CONTESTANT"
	ParticipantPractice         ParticipantType = "PRACTICE"
	ParticipantVirtual          ParticipantType = "VIRTUAL"
	ParticipantManager          ParticipantType = "MANAGER"
	ParticipantOutOfCompetition ParticipantType = "OUT_OF_COMPETITION"
)

func (t ParticipantType) Valid() bool {
	switch t {
	case ParticipantContestant, ParticipantPractice, ParticipantVirtual,
		ParticipantManager, ParticipantOutOfCompetition:
		return true
	}
	return false
}

type ProblemType string

const (
	ProblemProgramming ProblemType = "PROGRAMMING"
	ProblemQuestion    ProblemType = "QUESTION"
)

func (t ProblemType) Valid() bool {
	return t == ProblemProgramming || t == ProblemQuestion
}

// Verdict is the judged outcome of a submission.
type Verdict string

const (
	VerdictFailed                  Verdict = "FAILED"
	VerdictOK                      Verdict = "OK"
	VerdictPartial                 Verdict = "PARTIAL"
	VerdictCompilationError        Verdict = "COMPILATION_ERROR"
	VerdictRuntimeError            Verdict = "RUNTIME_ERROR"
	VerdictWrongAnswer             Verdict = "WRONG_ANSWER"
	VerdictPresentationError       Verdict = "PRESENTATION_ERROR"
	VerdictTimeLimitExceeded       Verdict = "TIME_LIMIT_EXCEEDED"
	VerdictMemoryLimitExceeded     Verdict = "MEMORY_LIMIT_EXCEEDED"
	VerdictIdlenessLimitExceeded   Verdict = "IDLENESS_LIMIT_EXCEEDED"
	VerdictSecurityViolated        Verdict = "SECURITY_VIOLATED"
	VerdictCrashed                 Verdict = "CRASHED"
	VerdictInputPreparationCrashed Verdict = "INPUT_PREPARATION_CRASHED"
	VerdictChallenged              Verdict = "CHALLENGED"
	VerdictSkipped                 Verdict = "SKIPPED"
	VerdictTesting                 Verdict = "TESTING"
	VerdictRejected                Verdict = "REJECTED"
)

func (v Verdict) Valid() bool {
	switch v {
	case VerdictFailed, VerdictOK, VerdictPartial, VerdictCompilationError,
		VerdictRuntimeError, VerdictWrongAnswer, VerdictPresentationError,
		VerdictTimeLimitExceeded, VerdictMemoryLimitExceeded,
		VerdictIdlenessLimitExceeded, VerdictSecurityViolated, VerdictCrashed,
		VerdictInputPreparationCrashed, VerdictChallenged, VerdictSkipped,
		VerdictTesting, VerdictRejected:
		return true
	}
	return false
}

type ProblemResultType string

const (
	ResultPreliminary ProblemResultType = "PRELIMINARY"
	ResultFinal       ProblemResultType = "FINAL"
)

func (t ProblemResultType) Valid() bool {
	return t == ResultPreliminary || t == ResultFinal
}
