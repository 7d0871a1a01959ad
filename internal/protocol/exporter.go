package protocol

import (
	"fmt"
	"strings"
	"time"

	"indigo/internal/scoring"
)

// MimeTypeCSV — MIME-тип экспортируемого протокола.
const MimeTypeCSV = "text/csv;charset=utf-8"

// utf8BOM — маркер порядка байтов, добавляемый в начало файла, чтобы
// распространённые табличные редакторы корректно распознали кодировку UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// noScore — значение, выводимое в колонке среднего балла, когда участник
// ещё не получил ни одной оценки. Отсутствующий балл никогда не выводится
// как литеральный ноль.
const noScore = "—"

// Artifact — готовый к сохранению файл протокола.
type Artifact struct {
	// Filename — имя файла в формате protocol_contest_<id>_<YYYY-MM-DD>.csv.
	Filename string
	// MimeType — MIME-тип содержимого.
	MimeType string
	// Data — байты файла, включая BOM-префикс.
	Data []byte
}

// Build формирует официальный протокол конкурса из уже отранжированного
// списка участников. Список должен быть отсортирован вызывающей стороной:
// экспорт не пересортировывает данные, поэтому порядок мест в файле
// байт-в-байт совпадает с порядком, показанным на экране.
//
// Структура файла:
//  1. Таблица рейтинга: место (с единицы), ФИО, возраст, номинация,
//     средний балл с двумя знаками после запятой (либо «—», если оценок нет),
//     количество оценок.
//  2. Через две пустые строки — детальная таблица оценок жюри: участник,
//     член жюри, оценка с одним знаком после запятой, комментарий.
//
// Кавычки внутри значений экранируются (удвоением) только во второй таблице.
// Эта асимметрия воспроизводит эталонное поведение намеренно и отмечена
// для ревизии владельцем продукта; см. DESIGN.md.
//
// Дата exportedAt попадает только в имя файла. Для пустого списка участников
// экспорт не выполняется: возвращается (Artifact{}, false) без ошибки.
func Build(contestID int, ranked []scoring.ParticipantSummary, exportedAt time.Time) (Artifact, bool) {
	if len(ranked) == 0 {
		return Artifact{}, false
	}

	lines := make([]string, 0, len(ranked)+5)
	lines = append(lines, "Место,ФИО,Возраст,Номинация,Средний балл,Количество оценок")
	for i, participant := range ranked {
		average := noScore
		if participant.AverageScore != nil {
			average = fmt.Sprintf("%.2f", *participant.AverageScore)
		}
		lines = append(lines, fmt.Sprintf(`%d,"%s",%d,"%s",%s,%d`,
			i+1,
			participant.Name,
			participant.Age,
			participant.Nomination,
			average,
			participant.ScoreCount,
		))
	}

	lines = append(lines, "", "", "Детальные оценки жюри:")
	lines = append(lines, "Участник,Член жюри,Оценка,Комментарий")
	for _, participant := range ranked {
		for _, entry := range participant.JudgeScores {
			comment := ""
			if entry.Comment != nil {
				comment = strings.ReplaceAll(*entry.Comment, `"`, `""`)
			}
			lines = append(lines, fmt.Sprintf(`"%s","%s",%.1f,"%s"`,
				participant.Name,
				entry.JudgeName,
				entry.Score,
				comment,
			))
		}
	}

	content := strings.Join(lines, "\n")
	data := make([]byte, 0, len(utf8BOM)+len(content))
	data = append(data, utf8BOM...)
	data = append(data, content...)

	artifact := Artifact{
		Filename: fmt.Sprintf("protocol_contest_%d_%s.csv", contestID, exportedAt.Format("2006-01-02")),
		MimeType: MimeTypeCSV,
		Data:     data,
	}

	return artifact, true
}
