package models

// SetDocument is the top-level document of a question set. Pointer and
// interface fields left nil are stored as null.
type SetDocument struct {
	ID            string   `firestore:"id"`
	Name          *string  `firestore:"name"`
	Tags          []string `firestore:"tags"`
	Difficulty    any      `firestore:"difficulty"`
	IsExamQ       any      `firestore:"isExamQ"`
	MarkingScheme *string  `firestore:"markingScheme"`
	LogTables     *string  `firestore:"logTables"`
}

// PartDocument is stored once per question part in the set's content
// subcollection.
type PartDocument struct {
	Question      any     `firestore:"question"`
	Answer        any     `firestore:"answer"`
	OrderMatters  any     `firestore:"ordermatters"`
	Prefix        any     `firestore:"prefix"`
	Image         *string `firestore:"image"`
	MarkingScheme *string `firestore:"markingScheme"`
	LogTables     *string `firestore:"logTables"`
}

// TopicsDocument holds the topic lists merged onto a subject level document.
type TopicsDocument struct {
	Topics    []string
	SubTopics []string
	Sections  []string
}

// Fields returns the document as a field map, the shape merge writes need.
func (d *TopicsDocument) Fields() map[string]interface{} {
	return map[string]interface{}{
		"topics":    d.Topics,
		"subTopics": d.SubTopics,
		"sections":  d.Sections,
	}
}
