package scoring

import "sort"

// Rank строит рейтинг участников конкурса: возвращает новый список,
// отсортированный по убыванию среднего балла. Отсутствующий средний балл
// (nil) участвует в сравнении как 0, при этом само значение в результате
// остаётся nil.
//
// Сортировка устойчивая: участники с равным эффективным средним баллом
// сохраняют взаимный порядок входного списка. Номер места в протоколе
// виден пользователю, поэтому результат обязан быть воспроизводимым
// для одинакового входа.
//
// Входной список не изменяется; пустой вход даёт пустой результат.
func Rank(summaries []ParticipantSummary) []ParticipantSummary {
	ranked := make([]ParticipantSummary, len(summaries))
	copy(ranked, summaries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EffectiveAverage() > ranked[j].EffectiveAverage()
	})

	return ranked
}
