package user

// ProfileFields is the checklist used for profile completion.
var ProfileFields = []string{
	"username", "email", "department", "year", "rollNumber", "phone", "skills", "bio", "cgpa",
}

func (u User) profileValues() []string {
	return []string{u.Username, u.Email, u.Department, u.Year, u.RollNumber, u.Phone, u.Skills, u.Bio, u.CGPA}
}

// FilledProfileFields counts non-empty checklist fields.
func (u User) FilledProfileFields() int {
	n := 0
	for _, v := range u.profileValues() {
		if v != "" {
			n++
		}
	}
	return n
}

// Completion is the filled share of the checklist as a floored percentage.
func (u User) Completion() int {
	return u.FilledProfileFields() * 100 / len(ProfileFields)
}

// ProfileUpdate carries the optional fields a student may edit. Nil leaves
// the stored value untouched.
type ProfileUpdate struct {
	Department *string
	Year       *string
	RollNumber *string
	Phone      *string
	Skills     *string
	Bio        *string
	CGPA       *string
}

func (p ProfileUpdate) Empty() bool {
	return p.Department == nil && p.Year == nil && p.RollNumber == nil &&
		p.Phone == nil && p.Skills == nil && p.Bio == nil && p.CGPA == nil
}

// Apply merges p into u and refreshes ProfileComplete.
func (p ProfileUpdate) Apply(u User) User {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&u.Department, p.Department)
	set(&u.Year, p.Year)
	set(&u.RollNumber, p.RollNumber)
	set(&u.Phone, p.Phone)
	set(&u.Skills, p.Skills)
	set(&u.Bio, p.Bio)
	set(&u.CGPA, p.CGPA)
	u.ProfileComplete = u.FilledProfileFields() == len(ProfileFields)
	return u
}
