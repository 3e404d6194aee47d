package models

// Need is a special-need category as the kitchen API serves it.
// The reserved "NAI" category is never placed on the weekly board.
type Need struct {
	ID    int    `json:"id"`
	Label string `json:"necessidade"`
}

// Pivot carries the id of the student-need join row. That id, not the
// student's or the need's, is what the day-assignment endpoints operate on.
type Pivot struct {
	ID int `json:"id"`
}

// Student represents a student record from the kitchen API
type Student struct {
	ID           int    `json:"id"`
	Name         string `json:"nome"`
	Registration string `json:"rm,omitempty"`
	BirthDate    string `json:"data_nascimento,omitempty"`
	Gender       string `json:"genero,omitempty"`
	ClassID      int    `json:"turmas_id,omitempty"`
	PhotoRef     string `json:"foto,omitempty"`
	Description  string `json:"descricao,omitempty"`
	Pivot        *Pivot `json:"pivot,omitempty"`
}

// NeedWithStudents is the detail view of a need, listing every student
// associated with it (each carrying the join row in Pivot)
type NeedWithStudents struct {
	ID       int       `json:"id"`
	Label    string    `json:"necessidade"`
	Students []Student `json:"alunos"`
}

// NeedRef is the embedded reference a schedule entry uses to say which
// need justified scheduling the student on that day
type NeedRef struct {
	ID int `json:"id"`
}

// ScheduledStudent is one entry of a weekday's schedule listing
type ScheduledStudent struct {
	ID          int      `json:"id"`
	Name        string   `json:"nome,omitempty"`
	RelatedNeed *NeedRef `json:"necessidade_relacionada"`
}

// ScheduleDay is one weekday column as the kitchen API serves it
type ScheduleDay struct {
	ID       int                `json:"id"`
	Label    string             `json:"dia"`
	Students []ScheduledStudent `json:"alunos"`
}

// Relation is the resolved student-need association the board works with.
// RelationID is the join row id the day-assignment endpoints expect.
type Relation struct {
	RelationID int    `json:"relation_id"`
	StudentID  int    `json:"student_id"`
	NeedID     int    `json:"need_id"`
	Label      string `json:"label"`
}

// Occurrence is one appearance of a relation on one weekday. ID is
// synthetic, regenerated on every board rebuild, and carries no server
// meaning; it exists only so rendered list items have per-render identity.
type Occurrence struct {
	ID         string `json:"occurrence_id"`
	RelationID int    `json:"relation_id"`
	DayID      int    `json:"day_id"`
}

// Column is one weekday of the assembled board
type Column struct {
	DayID       int          `json:"day_id"`
	Label       string       `json:"day_label"`
	Occurrences []Occurrence `json:"occurrences"`
}

// Board is the fully-rebuilt view model driving the weekly scheduler.
// Columns keep the server-provided day order.
type Board struct {
	Columns []Column `json:"columns"`
}

// User is an application user as the kitchen API serves it
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	NIF   string `json:"nif,omitempty"`
	Email string `json:"email,omitempty"`
	Level int    `json:"nivel_user"`
}

// Class represents a school class (turma)
type Class struct {
	ID   int    `json:"id"`
	Name string `json:"nome_turma"`
}

// Category is a meal/product category
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"nome_categoria"`
}

// MealCount is one class's meal count for a date
type MealCount struct {
	ID       int    `json:"id"`
	Quantity int    `json:"qtd_contagem"`
	ClassID  int    `json:"turmas_id"`
	Date     string `json:"data,omitempty"`
}

// NESEntry records that a scheduled special-needs student was counted
// present on a given day's meal count
type NESEntry struct {
	ID         int    `json:"id"`
	CountID    int    `json:"contagem_id"`
	RelationID int    `json:"alunos_has_necessidades_id"`
	Date       string `json:"data,omitempty"`
}

// ProductionRecord is one production/waste control entry
type ProductionRecord struct {
	ID       int    `json:"id"`
	Date     string `json:"data,omitempty"`
	Meal     string `json:"refeicao,omitempty"`
	Produced string `json:"qtd_produzida,omitempty"`
	Leftover string `json:"sobra_limpa,omitempty"`
	Waste    string `json:"resto_ingesta,omitempty"`
	Notes    string `json:"observacoes,omitempty"`
}

// Menu is a published menu PDF
type Menu struct {
	ID        int    `json:"id"`
	Name      string `json:"nome,omitempty"`
	FileRef   string `json:"arquivo,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// AuthorizedEntry is a direction-authorized extra meal request; new
// entries always start in status "pendente"
type AuthorizedEntry struct {
	ID          int    `json:"id"`
	Name        string `json:"nome,omitempty"`
	Reason      string `json:"motivo,omitempty"`
	Status      string `json:"status"`
	RequestedBy int    `json:"users_id,omitempty"`
	Date        string `json:"data,omitempty"`
}

// ChatMessage is one message of the general group chat
type ChatMessage struct {
	ID      int    `json:"id"`
	Text    string `json:"mensagem_chat"`
	Seen    string `json:"visto,omitempty"`
	Date    string `json:"data,omitempty"`
	UserID  int    `json:"users_id"`
	Created string `json:"created_at,omitempty"`
}
