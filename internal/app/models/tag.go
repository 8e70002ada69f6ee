package models

// Tag is a review tag from the controlled vocabulary.
type Tag string

const (
	TagHeavyWorkload         Tag = "Heavy workload"
	TagExamHeavy             Tag = "Exam-heavy"
	TagProjectBased          Tag = "Project-based"
	TagGroupProjects         Tag = "Group projects"
	TagClearGrading          Tag = "Clear grading"
	TagFlexibleDeadlines     Tag = "Flexible deadlines"
	TagIndustryRelevance     Tag = "Industry relevance"
	TagTheoryFocused         Tag = "Theory-focused"
	TagPracticalLabs         Tag = "Practical labs"
	TagPresentationRequired  Tag = "Presentation required"
	TagTeamworkEssential     Tag = "Teamwork essential"
	TagFastPaced             Tag = "Fast-paced"
	TagMathIntensive         Tag = "Math-intensive"
	TagWritingIntensive      Tag = "Writing-intensive"
	TagLotsOfReading         Tag = "Lots of reading"
	TagInteractive           Tag = "Interactive"
	TagRequiresPriorKnowledge Tag = "Requires prior knowledge"
)

// ReviewTags is the full controlled vocabulary, in declaration order.
var ReviewTags = []Tag{
	TagHeavyWorkload,
	TagExamHeavy,
	TagProjectBased,
	TagGroupProjects,
	TagClearGrading,
	TagFlexibleDeadlines,
	TagIndustryRelevance,
	TagTheoryFocused,
	TagPracticalLabs,
	TagPresentationRequired,
	TagTeamworkEssential,
	TagFastPaced,
	TagMathIntensive,
	TagWritingIntensive,
	TagLotsOfReading,
	TagInteractive,
	TagRequiresPriorKnowledge,
}

var reviewTagSet = func() map[Tag]struct{} {
	set := make(map[Tag]struct{}, len(ReviewTags))
	for _, t := range ReviewTags {
		set[t] = struct{}{}
	}
	return set
}()

// IsValid reports whether t belongs to the controlled vocabulary.
func (t Tag) IsValid() bool {
	_, ok := reviewTagSet[t]
	return ok
}

// InvalidTags returns the subset of tags not in the controlled vocabulary.
func InvalidTags(tags []Tag) []Tag {
	var invalid []Tag
	for _, t := range tags {
		if !t.IsValid() {
			invalid = append(invalid, t)
		}
	}
	return invalid
}
