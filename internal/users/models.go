package users

// Profile is the learning profile stored under a user document.
type Profile struct {
	Bio                string   `firestore:"bio" json:"bio"`
	JoinDate           string   `firestore:"joinDate" json:"joinDate"`
	CoursesCompleted   int      `firestore:"coursesCompleted" json:"coursesCompleted"`
	CertificatesEarned []string `firestore:"certificatesEarned" json:"certificatesEarned"`
	Friends            []string `firestore:"friends" json:"friends"`
	SkillLevel         string   `firestore:"skillLevel" json:"skillLevel"`
	PreferredSubjects  []string `firestore:"preferredSubjects" json:"preferredSubjects"`
}

// User is a document in the `users` collection, keyed by provider UID.
type User struct {
	ID        string   `firestore:"id" json:"id"`
	Email     string   `firestore:"email" json:"email"`
	Name      string   `firestore:"name" json:"name"`
	AvatarURL string   `firestore:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Profile   *Profile `firestore:"profile,omitempty" json:"profile,omitempty"`
}

// DefaultProfile returns the profile a fresh signup starts with.
func DefaultProfile(joinDate string) *Profile {
	return &Profile{
		Bio:                "",
		JoinDate:           joinDate,
		CoursesCompleted:   0,
		CertificatesEarned: []string{},
		Friends:            []string{},
		SkillLevel:         "Beginner",
		PreferredSubjects:  []string{},
	}
}

// UpdateUserRequest is the body of PATCH /users/me. Only the fields a user
// may edit; identity fields are never writable.
type UpdateUserRequest struct {
	Name      string   `json:"name"`
	AvatarURL string   `json:"avatar_url"`
	Profile   *Profile `json:"profile"`
}

// CreateUserRequest is the body of POST /users, sent once after signup.
type CreateUserRequest struct {
	Name string `json:"name" binding:"required"`
}
