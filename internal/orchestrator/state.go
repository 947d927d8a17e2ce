package orchestrator

// State is a stage of the generation state machine. Each Generate call
// walks Idle → Researching → Synthesizing → GeneratingQuiz → Completed,
// detouring through FallbackGenerating when the agentic chain fails, and
// ending in Failed only when the fallback fails too.
type State string

const (
	StateIdle               State = "idle"
	StateResearching        State = "researching"
	StateSynthesizing       State = "synthesizing"
	StateGeneratingQuiz     State = "generating_quiz"
	StateFallbackGenerating State = "fallback_generating"
	StateCompleted          State = "completed"
	StateFailed             State = "failed"
)
