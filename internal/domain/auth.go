package domain

// SubjectType identifies who a token was issued to.
type SubjectType string

// SubjectTypeAdmin is the only subject able to read stored submissions.
const SubjectTypeAdmin SubjectType = "ADMIN"
