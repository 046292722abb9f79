package session

// Entry is one key/value pair in the local session database.
type Entry struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value []byte `gorm:"column:value;not null"`
}

func (Entry) TableName() string {
	return "metadata"
}
