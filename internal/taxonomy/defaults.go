package taxonomy

const (
	ProgrammingLanguages = "programming_languages"
	FrameworksLibraries  = "frameworks_libraries"
	Databases            = "databases"
	CloudDevOps          = "cloud_devops"
	SoftwareTools        = "software_tools"
	Methodologies        = "methodologies"
	MachineLearning      = "machine_learning"
	SoftSkills           = "soft_skills"
)

// defaultOrder is the order of the built-in categories. Override files reuse it for
// the category names they share with the defaults.
var defaultOrder = []string{
	ProgrammingLanguages,
	FrameworksLibraries,
	Databases,
	CloudDevOps,
	SoftwareTools,
	Methodologies,
	MachineLearning,
	SoftSkills,
}

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	return New([]Category{
		{Name: ProgrammingLanguages, Patterns: []string{
			"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "php",
			"go", "rust", "swift", "kotlin", "scala", "perl", "r", "dart",
		}},
		{Name: FrameworksLibraries, Patterns: []string{
			"react", "angular", "vue", "node.js", "express", "django", "flask", "spring",
			"asp.net", "laravel", "symfony", "rails", "flutter", "tensorflow", "pytorch",
			"keras", "scikit-learn", "jquery", "bootstrap",
		}},
		{Name: Databases, Patterns: []string{
			"sql", "mysql", "postgresql", "mongodb", "sqlite", "oracle", "redis",
			"cassandra", "dynamodb", "firestore", "elasticsearch", "neo4j",
		}},
		{Name: CloudDevOps, Patterns: []string{
			"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "terraform", "ansible",
			"ci/cd", "git", "github", "gitlab", "bitbucket", "aws lambda", "serverless",
			"microservices", "cloud computing",
		}},
		{Name: SoftwareTools, Patterns: []string{
			"jira", "confluence", "trello", "slack", "figma", "sketch", "adobe", "photoshop",
			"illustrator", "xd", "zeplin", "tableau", "power bi", "excel", "powerpoint",
			"word", "linux", "unix", "windows", "macos",
		}},
		{Name: Methodologies, Patterns: []string{
			"agile", "scrum", "kanban", "waterfall", "lean", "test-driven development",
			"behavior-driven development", "devops", "continuous integration",
			"continuous deployment", "continuous delivery", "pair programming",
		}},
		{Name: MachineLearning, Patterns: []string{
			"machine learning", "deep learning", "artificial intelligence", "ai",
			"natural language processing", "nlp", "computer vision", "neural networks",
			"data mining", "predictive modeling", "reinforcement learning",
			"supervised learning", "unsupervised learning", "classification", "regression",
			"clustering",
		}},
		{Name: SoftSkills, Patterns: []string{
			"communication", "teamwork", "problem solving", "leadership", "time management",
			"critical thinking", "adaptability", "collaboration", "presentation",
			"negotiation", "conflict resolution", "emotional intelligence",
		}},
	})
}

// ResumeVocabulary returns the fixed technical vocabulary scanned in the skills
// section of a résumé.
func ResumeVocabulary() []string {
	return []string{
		"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "php", "go", "rust",
		"swift", "react", "angular", "vue", "node.js", "express", "django", "flask", "spring",
		"asp.net", "html", "css", "sql", "nosql", "mongodb", "postgresql", "mysql", "oracle",
		"azure", "aws", "gcp", "kubernetes", "docker", "jenkins", "ci/cd", "git", "github",
		"gitlab", "bitbucket", "agile", "scrum", "kanban", "jira", "confluence", "devops",
		"machine learning", "ai", "data science", "data analysis", "data visualization",
		"tableau", "power bi", "tensorflow", "pytorch", "keras", "pandas", "numpy", "scipy",
		"scikit-learn",
	}
}
