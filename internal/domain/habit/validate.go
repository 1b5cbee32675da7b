package habit

// ViolationCode identifies a specific business-rule violation.
type ViolationCode string

const (
	CodeRewardAndLinkedExclusive  ViolationCode = "REWARD_AND_LINKED_EXCLUSIVE"
	CodeDurationTooLong           ViolationCode = "DURATION_TOO_LONG"
	CodeLinkedNotPleasant         ViolationCode = "LINKED_NOT_PLEASANT"
	CodePleasantHasRewardOrLinked ViolationCode = "PLEASANT_HAS_REWARD_OR_LINKED"
	CodeFrequencyOutOfRange       ViolationCode = "FREQUENCY_OUT_OF_RANGE"
)

// Violation describes one failed business rule.
type Violation struct {
	Code    ViolationCode
	Message string
}

// MaxDurationSeconds is the cap on a habit's execution time.
const MaxDurationSeconds = 120

// Validate checks the business rules for a habit and returns every violation
// found, not just the first one. An empty slice means the habit is valid.
// LinkedAction must be eager-loaded when LinkedActionID is set.
func Validate(h *Habit) []Violation {
	var violations []Violation

	linked := h.LinkedAction != nil || h.LinkedActionID.Valid

	if h.Reward != "" && linked {
		violations = append(violations, Violation{
			Code:    CodeRewardAndLinkedExclusive,
			Message: "Нельзя указать одновременно вознаграждение и связанную приятную привычку.",
		})
	}

	if h.Duration > MaxDurationSeconds {
		violations = append(violations, Violation{
			Code:    CodeDurationTooLong,
			Message: "Время выполнения привычки не должно превышать 120 секунд.",
		})
	}

	if h.LinkedAction != nil && !h.LinkedAction.IsPleasant {
		violations = append(violations, Violation{
			Code:    CodeLinkedNotPleasant,
			Message: "В связанные привычки могут попадать только привычки с признаком приятной привычки.",
		})
	}

	if h.IsPleasant && (h.Reward != "" || linked) {
		violations = append(violations, Violation{
			Code:    CodePleasantHasRewardOrLinked,
			Message: "У приятной привычки не может быть вознаграждения или связанной привычки.",
		})
	}

	if h.Frequency < 1 || h.Frequency > 7 {
		violations = append(violations, Violation{
			Code:    CodeFrequencyOutOfRange,
			Message: "Периодичность выполнения должна быть от 1 до 7 дней (не реже одного раза в неделю).",
		})
	}

	return violations
}
