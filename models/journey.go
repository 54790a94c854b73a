package models

// Journey statuses
const (
	JourneyStatusActive    = "ACTIVE"
	JourneyStatusCompleted = "COMPLETED"
	JourneyStatusFailed    = "FAILED"
)

// AI rule types recognized by journey stages
const (
	RuleTypeValidation = "validation_rule"
	RuleTypePricing    = "pricing_rule"
	RuleTypeInventory  = "inventory_rule"
	RuleTypeAssignment = "assignment_rule"
	RuleTypePayment    = "payment_rule"
)

// JourneyConfiguration carries execution limits for a journey
type JourneyConfiguration struct {
	TimeoutMinutes  int  `json:"timeoutMinutes" dynamodbav:"timeoutMinutes"`
	MaxRetries      int  `json:"maxRetries" dynamodbav:"maxRetries"`
	NotifyOnFailure bool `json:"notifyOnFailure" dynamodbav:"notifyOnFailure"`
}

// AIConfig declares the rule vocabulary a journey's stages may use
type AIConfig struct {
	RuleTypes      []string `json:"ruleTypes" dynamodbav:"ruleTypes"`
	PriorityLevels []string `json:"priorityLevels" dynamodbav:"priorityLevels"`
	Scopes         []string `json:"scopes" dynamodbav:"scopes"`
}

// RuleCondition is one predicate inside an AI rule's context
type RuleCondition struct {
	Field    string      `json:"field" dynamodbav:"field"`
	Operator string      `json:"operator" dynamodbav:"operator"`
	Value    interface{} `json:"value" dynamodbav:"value"`
}

// RuleContext scopes what entities a rule applies to
type RuleContext struct {
	AppliesTo  string          `json:"appliesTo" dynamodbav:"appliesTo"`
	Conditions []RuleCondition `json:"conditions,omitempty" dynamodbav:"conditions,omitempty"`
}

// RuleContent holds both human-readable and machine forms of a rule
type RuleContent struct {
	NaturalLanguage string                 `json:"naturalLanguage" dynamodbav:"naturalLanguage"`
	JSONRule        map[string]interface{} `json:"jsonRule,omitempty" dynamodbav:"jsonRule,omitempty"`
}

// AIRule is a declarative rule attached to a journey stage
type AIRule struct {
	RuleID   string      `json:"ruleId" dynamodbav:"ruleId"`
	Title    string      `json:"title" dynamodbav:"title"`
	Type     string      `json:"type" dynamodbav:"type"`
	Priority string      `json:"priority" dynamodbav:"priority"`
	Scope    string      `json:"scope" dynamodbav:"scope"`
	Context  RuleContext `json:"context" dynamodbav:"context"`
	Content  RuleContent `json:"content" dynamodbav:"content"`
}

// Journey is the workflow metadata record stored under
// PK=JOURNEY#<id>, SK=METADATA.
type Journey struct {
	JourneyID         string               `json:"journeyId" dynamodbav:"journeyId"`
	Name              string               `json:"name" dynamodbav:"name"`
	Description       string               `json:"description,omitempty" dynamodbav:"description,omitempty"`
	Status            string               `json:"status" dynamodbav:"status"`
	JourneyType       string               `json:"journeyType" dynamodbav:"journeyType"`
	Configuration     JourneyConfiguration `json:"configuration" dynamodbav:"configuration"`
	CurrentStageIndex int                  `json:"currentStageIndex" dynamodbav:"currentStageIndex"`
	StageSummary      map[string]string    `json:"stageSummary,omitempty" dynamodbav:"stageSummary,omitempty"`
	AIConfig          AIConfig             `json:"aiConfig" dynamodbav:"aiConfig"`
	CreatedAt         string               `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt         string               `json:"updatedAt" dynamodbav:"updatedAt"`
}

// StageDefinition is one ordered stage of a journey, stored under
// SK=STAGE#<nn>#<stageId> with zero-padded two digit ordering.
type StageDefinition struct {
	StageID     string   `json:"stageId" dynamodbav:"stageId"`
	Name        string   `json:"name" dynamodbav:"name"`
	Description string   `json:"description,omitempty" dynamodbav:"description,omitempty"`
	Order       int      `json:"order" dynamodbav:"order"`
	Rules       []AIRule `json:"rules,omitempty" dynamodbav:"rules,omitempty"`
}

// JourneyItem is the raw single-table row shape for the journeys table
type JourneyItem struct {
	PK         string                 `json:"PK" dynamodbav:"PK"`
	SK         string                 `json:"SK" dynamodbav:"SK"`
	EntityType string                 `json:"EntityType" dynamodbav:"EntityType"`
	GSI1PK     string                 `json:"GSI1PK" dynamodbav:"GSI1PK"`
	GSI1SK     string                 `json:"GSI1SK" dynamodbav:"GSI1SK"`
	Data       map[string]interface{} `json:"Data" dynamodbav:"Data"`
}

// StageResult captures what a stage did during an execution run
type StageResult struct {
	StageID    string `json:"stageId"`
	Status     string `json:"status"`
	Detail     string `json:"detail,omitempty"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt"`
}

// JourneyRunReport is the result of executing a journey end to end
type JourneyRunReport struct {
	JourneyID   string        `json:"journeyId"`
	RunID       string        `json:"runId"`
	OrderID     string        `json:"orderId,omitempty"`
	Status      string        `json:"status"`
	FailedStage string        `json:"failedStage,omitempty"`
	Stages      []StageResult `json:"stages"`
	StartedAt   string        `json:"startedAt"`
	FinishedAt  string        `json:"finishedAt"`
}
