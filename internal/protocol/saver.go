package protocol

import (
	"os"
	"path/filepath"
)

// FileSaver — внешняя возможность сохранения файла: сам экспорт протокола
// остаётся чистой функцией, а доставку байтов до носителя выполняет
// внедрённая реализация (каталог на диске, HTTP-выгрузка и т.п.).
type FileSaver interface {
	Save(artifact Artifact) error
}

// DirectorySaver сохраняет артефакты протоколов в заданный каталог-архив.
type DirectorySaver struct {
	dir string
}

// Save записывает артефакт в файл с именем artifact.Filename внутри каталога.
// Уже существующий файл с тем же именем перезаписывается.
func (ds *DirectorySaver) Save(artifact Artifact) error {
	return os.WriteFile(filepath.Join(ds.dir, artifact.Filename), artifact.Data, 0o644)
}

// NewDirectorySaver создаёт сейвер, пишущий в каталог dir.
// Каталог должен существовать и быть доступным на запись.
func NewDirectorySaver(dir string) *DirectorySaver {
	return &DirectorySaver{dir: dir}
}
