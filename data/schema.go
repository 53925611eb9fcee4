package data

const keyValueSchema = `
CREATE TABLE IF NOT EXISTS KeyValue (
    Key TEXT PRIMARY KEY,
    Value TEXT NOT NULL, -- JSON-текст, как в localStorage
    UpdatedAt DATETIME NOT NULL
);
`

// GetKeyValueSchema возвращает схему таблицы KeyValue.
func GetKeyValueSchema() string {
	return keyValueSchema
}
