package catalog

// items is the KWCAG 2.2 checklist in id order. It is never mutated after init.
var items = []Item{
	// 원칙 1. 인식의 용이성
	{
		ID: "5.1.1", Name: "적절한 대체 텍스트 제공", NameEn: "Appropriate alternative text",
		Principle: 1, Level: LevelA, Auto: AutoFull,
		EngineRules: []string{"image-alt", "input-image-alt", "area-alt", "object-alt", "svg-img-alt", "role-img-alt", "image-redundant-alt"},
		Description: "텍스트 아닌 콘텐츠는 그 의미나 용도를 인식할 수 있도록 대체 텍스트를 제공해야 한다.",
	},
	{
		ID: "5.2.1", Name: "자막 제공", NameEn: "Captions",
		Principle: 1, Level: LevelA, Auto: AutoPartial,
		EngineRules: []string{"video-caption"},
		Description: "멀티미디어 콘텐츠에는 자막, 대본 또는 수어를 제공해야 한다.",
	},
	{
		ID: "5.3.1", Name: "표의 구성", NameEn: "Table structure",
		Principle: 1, Level: LevelA, Auto: AutoFull,
		EngineRules: []string{"td-headers-attr", "th-has-data-cells", "table-duplicate-name", "scope-attr-valid", "td-has-header"},
		CustomRule:  "table-structure",
		Description: "표는 이해하기 쉽게 구성해야 한다.",
	},
	{
		ID: "5.3.2", Name: "콘텐츠의 선형구조", NameEn: "Linear structure",
		Principle: 1, Level: LevelA, Auto: AutoPartial,
		EngineRules: []string{"list", "listitem", "definition-list", "dlitem"},
		Description: "콘텐츠는 논리적인 순서로 제공해야 한다.",
	},
	{
		ID: "5.3.3", Name: "명확한 지시사항 제공", NameEn: "Clear instructions",
		Principle: 1, Level: LevelA, Auto: AutoManual,
		Description: "지시사항은 모양, 크기, 위치, 방향, 색, 소리 등에 관계없이 인식될 수 있어야 한다.",
	},
	{
		ID: "5.4.1", Name: "색에 무관한 콘텐츠 인식", NameEn: "Use of color",
		Principle: 1, Level: LevelA, Auto: AutoPartial,
		EngineRules: []string{"link-in-text-block"},
		Description: "콘텐츠는 색에 관계없이 인식될 수 있어야 한다.",
	},
	{
		ID: "5.4.2", Name: "자동 재생 금지", NameEn: "No automatic audio",
		Principle: 1, Level: LevelA, Auto: AutoFull,
		EngineRules: []string{"no-autoplay-audio"},
		CustomRule:  "auto-play",
		Description: "자동으로 소리가 재생되지 않아야 한다.",
	},
	{
		ID: "5.4.3", Name: "텍스트 콘텐츠의 명도 대비", NameEn: "Text contrast",
		Principle: 1, Level: LevelAA, Auto: AutoFull,
		EngineRules: []string{"color-contrast"},
		Description: "텍스트 콘텐츠와 배경 간의 명도 대비는 4.5 대 1 이상이어야 한다.",
	},
	{
		ID: "5.4.4", Name: "콘텐츠 간의 구분", NameEn: "Content distinction",
		Principle: 1, Level: LevelAA, Auto: AutoManual,
		Description: "이웃한 콘텐츠는 구별될 수 있어야 한다.",
	},

	// 원칙 2. 운용의 용이성
	{
		ID: "6.1.1", Name: "키보드 사용 보장", NameEn: "Keyboard accessible",
		Principle: 2, Level: LevelA, Auto: AutoPartial,
		EngineRules: []string{"scrollable-region-focusable", "server-side-image-map", "frame-focusable-content"},
		Description: "모든 기능은 키보드만으로도 사용할 수 있어야 한다.",
	},
	{
		ID: "6.1.2", Name: "초점 이동과 표시", NameEn: "Focus order and visibility",
		Principle: 2, Level: LevelA, Auto: AutoPartial,
		EngineRules: []string{"tabindex", "focus-order-semantics"},
		CustomRule:  "focus-visible",
		Description: "키보드에 의한 초점은 논리적으로 이동해야 하며, 시각적으로 구별할 수 있어야 한다.",
	},
	{
		ID: "6.1.3", Name: "조작 가능", NameEn: "Operable targets",
		Principle: 2, Level: LevelAA, Auto: AutoPartial,
		EngineRules: []string{"target-size"},
		Description: "사용자 입력 및 컨트롤은 조작 가능하도록 제공되어야 한다.",
	},
	{
		ID: "6.1.4", Name: "문자 단축키", NameEn: "Character key shortcuts",
		Principle: 2, Level: LevelA, Auto: AutoPartial,
		EngineRules: []string{"accesskeys"},
		Description: "문자 단축키는 오동작으로 인한 오류를 방지하여야 한다.",
	},
	{
		ID: "6.2.1", Name: "응답시간 조절", NameEn: "Adjustable timing",
		Principle: 2, Level: LevelA, Auto: AutoPartial,
		EngineRules: []string{"meta-refresh"},
		Description: "시간제한이 있는 콘텐츠는 응답시간을 조절할 수 있어야 한다.",
	},
	{
		ID: "6.2.2", Name: "정지 기능 제공", NameEn: "Pause, stop, hide",
		Principle: 2, Level: LevelA, Auto: AutoPartial,
		EngineRules: []string{"marquee"},
		Description: "자동으로 변경되는 콘텐츠는 움직임을 제어할 수 있어야 한다.",
	},
	{
		ID: "6.3.1", Name: "깜빡임과 번쩍임 사용 제한", NameEn: "Three flashes",
		Principle: 2, Level: LevelA, Auto: AutoPartial,
		EngineRules: []string{"blink"},
		CustomRule:  "blink-flash",
		Description: "초당 3~50회 주기로 깜빡이거나 번쩍이는 콘텐츠를 제공하지 않아야 한다.",
	},
	{
		ID: "6.4.1", Name: "반복 영역 건너뛰기", NameEn: "Bypass blocks",
		Principle: 2, Level: LevelA, Auto: AutoFull,
		EngineRules: []string{"bypass", "skip-link", "landmark-one-main"},
		CustomRule:  "skip-nav",
		Description: "콘텐츠의 반복되는 영역은 건너뛸 수 있어야 한다.",
	},
	{
		ID: "6.4.2", Name: "제목 제공", NameEn: "Titles",
		Principle: 2, Level: LevelA, Auto: AutoFull,
		EngineRules: []string{"document-title", "frame-title", "page-has-heading-one", "heading-order", "empty-heading"},
		CustomRule:  "page-title",
		Description: "페이지, 프레임, 콘텐츠 블록에는 적절한 제목을 제공해야 한다.",
	},
	{
		ID: "6.4.3", Name: "적절한 링크 텍스트", NameEn: "Link purpose",
		Principle: 2, Level: LevelA, Auto: AutoPartial,
		EngineRules: []string{"link-name"},
		CustomRule:  "link-text",
		Description: "링크 텍스트는 용도나 목적을 이해할 수 있도록 제공해야 한다.",
	},
	{
		ID: "6.4.4", Name: "고정된 참조 위치 정보", NameEn: "Fixed reference location",
		Principle: 2, Level: LevelAA, Auto: AutoManual,
		Description: "전자출판문서 형식의 웹 페이지는 각 페이지로 이동할 수 있는 기능이 있어야 하고, 서식이나 플랫폼에 상관없이 참조 위치 정보를 일관되게 제공·유지해야 한다.",
	},
	{
		ID: "6.5.1", Name: "단일 포인터 입력 지원", NameEn: "Pointer gestures",
		Principle: 2, Level: LevelA, Auto: AutoManual,
		Description: "다중 포인터 또는 경로기반 동작을 통한 입력은 단일 포인터 입력으로도 조작할 수 있어야 한다.",
	},
	{
		ID: "6.5.2", Name: "포인터 입력 취소", NameEn: "Pointer cancellation",
		Principle: 2, Level: LevelA, Auto: AutoManual,
		Description: "단일 포인터 입력으로 실행되는 기능은 취소할 수 있어야 한다.",
	},
	{
		ID: "6.5.3", Name: "레이블과 네임", NameEn: "Label in name",
		Principle: 2, Level: LevelA, Auto: AutoPartial,
		EngineRules: []string{"label-content-name-mismatch"},
		Description: "텍스트 또는 텍스트 이미지가 포함된 레이블이 있는 사용자 인터페이스 구성요소는 네임에 시각적으로 표시되는 해당 텍스트를 포함해야 한다.",
	},
	{
		ID: "6.5.4", Name: "동작기반 작동", NameEn: "Motion actuation",
		Principle: 2, Level: LevelA, Auto: AutoManual,
		Description: "동작기반으로 작동하는 기능은 사용자 인터페이스 구성요소로 조작할 수 있고, 동작기반 기능을 비활성화할 수 있어야 한다.",
	},

	// 원칙 3. 이해의 용이성
	{
		ID: "7.1.1", Name: "기본 언어 표시", NameEn: "Language of page",
		Principle: 3, Level: LevelA, Auto: AutoFull,
		EngineRules: []string{"html-has-lang", "html-lang-valid", "valid-lang", "html-xml-lang-mismatch"},
		CustomRule:  "lang-attr",
		Description: "주로 사용하는 언어를 명시해야 한다.",
	},
	{
		ID: "7.2.1", Name: "사용자 요구에 따른 실행", NameEn: "On input",
		Principle: 3, Level: LevelA, Auto: AutoPartial,
		CustomRule:  "on-input",
		Description: "사용자가 의도하지 않은 기능(새 창, 초점에 의한 맥락 변화 등)은 실행되지 않아야 한다.",
	},
	{
		ID: "7.2.2", Name: "찾기 쉬운 도움 정보", NameEn: "Consistent help",
		Principle: 3, Level: LevelA, Auto: AutoManual,
		Description: "도움 정보가 제공되는 경우, 각 페이지에서 동일한 상대적인 순서로 접근할 수 있어야 한다.",
	},
	{
		ID: "7.3.1", Name: "오류 정정", NameEn: "Error correction",
		Principle: 3, Level: LevelA, Auto: AutoManual,
		Description: "입력 오류를 정정할 수 있는 방법을 제공해야 한다.",
	},
	{
		ID: "7.3.2", Name: "레이블 제공", NameEn: "Labels",
		Principle: 3, Level: LevelA, Auto: AutoFull,
		EngineRules: []string{"label", "select-name", "input-button-name", "form-field-multiple-labels", "label-title-only"},
		Description: "사용자 입력에는 대응하는 레이블을 제공해야 한다.",
	},
	{
		ID: "7.3.3", Name: "접근 가능한 인증", NameEn: "Accessible authentication",
		Principle: 3, Level: LevelAA, Auto: AutoManual,
		Description: "인증 과정은 인지 기능 테스트에만 의존해서는 안 된다.",
	},
	{
		ID: "7.3.4", Name: "반복 입력 정보", NameEn: "Redundant entry",
		Principle: 3, Level: LevelA, Auto: AutoPartial,
		EngineRules: []string{"autocomplete-valid"},
		Description: "반복되는 입력 정보는 자동 입력 또는 선택 입력할 수 있어야 한다.",
	},

	// 원칙 4. 견고성
	{
		ID: "8.1.1", Name: "마크업 오류 방지", NameEn: "Markup errors",
		Principle: 4, Level: LevelA, Auto: AutoFull,
		EngineRules: []string{"duplicate-id", "duplicate-id-active", "duplicate-id-aria"},
		Description: "마크업 언어의 요소는 열고 닫음, 중첩 관계 및 속성 선언에 오류가 없어야 한다.",
	},
	{
		ID: "8.2.1", Name: "웹 애플리케이션 접근성 준수", NameEn: "Web application accessibility",
		Principle: 4, Level: LevelA, Auto: AutoFull,
		EngineRules: []string{
			"aria-allowed-attr", "aria-required-attr", "aria-required-children", "aria-required-parent",
			"aria-roles", "aria-valid-attr", "aria-valid-attr-value", "aria-hidden-body", "aria-hidden-focus",
			"button-name", "nested-interactive", "aria-command-name", "aria-input-field-name",
			"aria-toggle-field-name", "aria-prohibited-attr", "aria-deprecated-role",
		},
		Description: "콘텐츠에 포함된 웹 애플리케이션은 접근성이 있어야 한다.",
	},
}
