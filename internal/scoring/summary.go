package scoring

// JudgeScore — оценка одного члена жюри для участника конкурса.
// Порядок оценок в списке участника соответствует порядку их поступления
// из репозитория оценок и не обязан быть отсортированным.
type JudgeScore struct {
	// JudgeName — имя члена жюри, выставившего оценку.
	JudgeName string `json:"jury_name"`
	// Score — оценка в баллах. По соглашению предметной области лежит
	// в диапазоне [0, 10], но здесь это не проверяется: контроль ввода
	// выполняется компонентом выставления оценок, а допуск записей —
	// правилами валидации.
	Score float64 `json:"score"`
	// Comment — необязательный комментарий члена жюри.
	Comment *string `json:"comment"`
}

// ParticipantSummary — сводка оценок одного участника в рамках конкурса.
// Имена JSON-полей соответствуют проводному формату репозитория оценок.
type ParticipantSummary struct {
	// ID — уникальный идентификатор участника.
	ID int `json:"id"`
	// Name — отображаемое имя (ФИО) участника.
	Name string `json:"name"`
	// Age — возраст; используется только для отображения.
	Age int `json:"age"`
	// Nomination — номинация (категория), в которой выступает участник.
	Nomination string `json:"nomination"`
	// AverageScore — средний балл по всем оценкам жюри.
	// nil означает, что ни один член жюри ещё не выставил оценку.
	// Для ранжирования nil трактуется как 0, но в выводе никогда
	// не подменяется литеральным нулём.
	AverageScore *float64 `json:"avg_score"`
	// ScoreCount — количество оценок, учтённых источником в среднем балле.
	// Источник может расходиться с длиной JudgeScores, поэтому ранжирование
	// опирается исключительно на AverageScore.
	ScoreCount int `json:"scores_count"`
	// JudgeScores — детальные оценки жюри в порядке поступления.
	JudgeScores []JudgeScore `json:"jury_scores"`
}

// EffectiveAverage возвращает средний балл, используемый при сравнении
// участников: значение AverageScore либо 0, если оценок ещё нет.
func (p ParticipantSummary) EffectiveAverage() float64 {
	if p.AverageScore == nil {
		return 0
	}
	return *p.AverageScore
}
