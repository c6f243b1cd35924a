package ast

type (
	// главные сущности
	FileID uint32
	StmtID uint32
	TypeID uint32
	// подсущности
	PayloadID uint32
	FieldID   uint32
	ParamID   uint32
)

const (
	NoFileID    FileID    = 0
	NoStmtID    StmtID    = 0
	NoTypeID    TypeID    = 0
	NoPayloadID PayloadID = 0
	NoFieldID   FieldID   = 0
	NoParamID   ParamID   = 0
)

func (id FileID) IsValid() bool    { return id != NoFileID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id TypeID) IsValid() bool    { return id != NoTypeID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
func (id FieldID) IsValid() bool   { return id != NoFieldID }
func (id ParamID) IsValid() bool   { return id != NoParamID }
