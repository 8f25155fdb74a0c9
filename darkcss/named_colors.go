package darkcss

// namedColors holds the CSS color keywords in canonical HSLA form. It is
// read-only after package initialization.
var namedColors = map[string]ColorValue{
	"aliceblue":            {208, 100, 97, 1},
	"antiquewhite":         {34, 78, 91, 1},
	"aqua":                 {180, 100, 50, 1},
	"aquamarine":           {160, 100, 75, 1},
	"azure":                {180, 100, 97, 1},
	"beige":                {60, 56, 91, 1},
	"bisque":               {33, 100, 88, 1},
	"black":                {0, 0, 0, 1},
	"blanchedalmond":       {36, 100, 90, 1},
	"blue":                 {240, 100, 50, 1},
	"blueviolet":           {271, 76, 53, 1},
	"brown":                {0, 59, 41, 1},
	"burlywood":            {34, 57, 70, 1},
	"cadetblue":            {182, 25, 50, 1},
	"chartreuse":           {90, 100, 50, 1},
	"chocolate":            {25, 75, 47, 1},
	"coral":                {16, 100, 66, 1},
	"cornflowerblue":       {219, 79, 66, 1},
	"cornsilk":             {48, 100, 93, 1},
	"crimson":              {348, 83, 47, 1},
	"cyan":                 {180, 100, 50, 1},
	"darkblue":             {240, 100, 27, 1},
	"darkcyan":             {180, 100, 27, 1},
	"darkgoldenrod":        {43, 89, 38, 1},
	"darkgray":             {0, 0, 66, 1},
	"darkgreen":            {120, 100, 20, 1},
	"darkgrey":             {0, 0, 66, 1},
	"darkkhaki":            {56, 38, 58, 1},
	"darkmagenta":          {300, 100, 27, 1},
	"darkolivegreen":       {82, 39, 30, 1},
	"darkorange":           {33, 100, 50, 1},
	"darkorchid":           {280, 61, 50, 1},
	"darkred":              {0, 100, 27, 1},
	"darksalmon":           {15, 72, 70, 1},
	"darkseagreen":         {120, 25, 65, 1},
	"darkslateblue":        {248, 39, 39, 1},
	"darkslategray":        {180, 25, 25, 1},
	"darkslategrey":        {180, 25, 25, 1},
	"darkturquoise":        {181, 100, 41, 1},
	"darkviolet":           {282, 100, 41, 1},
	"deeppink":             {328, 100, 54, 1},
	"deepskyblue":          {195, 100, 50, 1},
	"dimgray":              {0, 0, 41, 1},
	"dimgrey":              {0, 0, 41, 1},
	"dodgerblue":           {210, 100, 56, 1},
	"firebrick":            {0, 68, 42, 1},
	"floralwhite":          {40, 100, 97, 1},
	"forestgreen":          {120, 61, 34, 1},
	"fuchsia":              {300, 100, 50, 1},
	"gainsboro":            {0, 0, 86, 1},
	"ghostwhite":           {240, 100, 99, 1},
	"gold":                 {51, 100, 50, 1},
	"goldenrod":            {43, 74, 49, 1},
	"gray":                 {0, 0, 50, 1},
	"green":                {120, 100, 25, 1},
	"greenyellow":          {84, 100, 59, 1},
	"grey":                 {0, 0, 50, 1},
	"honeydew":             {120, 100, 97, 1},
	"hotpink":              {330, 100, 71, 1},
	"indianred":            {0, 53, 58, 1},
	"indigo":               {275, 100, 25, 1},
	"ivory":                {60, 100, 97, 1},
	"khaki":                {54, 77, 75, 1},
	"lavender":             {240, 67, 94, 1},
	"lavenderblush":        {340, 100, 97, 1},
	"lawngreen":            {90, 100, 49, 1},
	"lemonchiffon":         {54, 100, 90, 1},
	"lightblue":            {195, 53, 79, 1},
	"lightcoral":           {0, 79, 72, 1},
	"lightcyan":            {180, 100, 94, 1},
	"lightgoldenrodyellow": {60, 80, 90, 1},
	"lightgray":            {0, 0, 83, 1},
	"lightgreen":           {120, 73, 75, 1},
	"lightgrey":            {0, 0, 83, 1},
	"lightpink":            {351, 100, 86, 1},
	"lightsalmon":          {17, 100, 74, 1},
	"lightseagreen":        {177, 70, 41, 1},
	"lightskyblue":         {203, 92, 75, 1},
	"lightslategray":       {210, 14, 53, 1},
	"lightslategrey":       {210, 14, 53, 1},
	"lightsteelblue":       {214, 41, 78, 1},
	"lightyellow":          {60, 100, 94, 1},
	"lime":                 {120, 100, 50, 1},
	"limegreen":            {120, 61, 50, 1},
	"linen":                {30, 67, 94, 1},
	"magenta":              {300, 100, 50, 1},
	"maroon":               {0, 100, 25, 1},
	"mediumaquamarine":     {160, 51, 60, 1},
	"mediumblue":           {240, 100, 40, 1},
	"mediumorchid":         {288, 59, 58, 1},
	"mediumpurple":         {260, 60, 65, 1},
	"mediumseagreen":       {147, 50, 47, 1},
	"mediumslateblue":      {249, 80, 67, 1},
	"mediumspringgreen":    {157, 100, 49, 1},
	"mediumturquoise":      {178, 60, 55, 1},
	"mediumvioletred":      {322, 81, 43, 1},
	"midnightblue":         {240, 64, 27, 1},
	"mintcream":            {150, 100, 98, 1},
	"mistyrose":            {6, 100, 94, 1},
	"moccasin":             {38, 100, 85, 1},
	"navajowhite":          {36, 100, 84, 1},
	"navy":                 {240, 100, 25, 1},
	"oldlace":              {39, 85, 95, 1},
	"olive":                {60, 100, 25, 1},
	"olivedrab":            {80, 60, 35, 1},
	"orange":               {39, 100, 50, 1},
	"orangered":            {16, 100, 50, 1},
	"orchid":               {302, 59, 65, 1},
	"palegoldenrod":        {55, 67, 80, 1},
	"palegreen":            {120, 93, 79, 1},
	"paleturquoise":        {180, 65, 81, 1},
	"palevioletred":        {340, 60, 65, 1},
	"papayawhip":           {37, 100, 92, 1},
	"peachpuff":            {28, 100, 86, 1},
	"peru":                 {30, 59, 53, 1},
	"pink":                 {350, 100, 88, 1},
	"plum":                 {300, 47, 75, 1},
	"powderblue":           {187, 52, 80, 1},
	"purple":               {300, 100, 25, 1},
	"rebeccapurple":        {270, 50, 40, 1},
	"red":                  {0, 100, 50, 1},
	"rosybrown":            {0, 25, 65, 1},
	"royalblue":            {225, 73, 57, 1},
	"saddlebrown":          {25, 76, 31, 1},
	"salmon":               {6, 93, 71, 1},
	"sandybrown":           {28, 87, 67, 1},
	"seagreen":             {146, 50, 36, 1},
	"seashell":             {25, 100, 97, 1},
	"sienna":               {19, 56, 40, 1},
	"silver":               {0, 0, 75, 1},
	"skyblue":              {197, 71, 73, 1},
	"slateblue":            {248, 53, 58, 1},
	"slategray":            {210, 13, 50, 1},
	"slategrey":            {210, 13, 50, 1},
	"snow":                 {0, 100, 99, 1},
	"springgreen":          {150, 100, 50, 1},
	"steelblue":            {207, 44, 49, 1},
	"tan":                  {34, 44, 69, 1},
	"teal":                 {180, 100, 25, 1},
	"thistle":              {300, 24, 80, 1},
	"tomato":               {9, 100, 64, 1},
	"turquoise":            {174, 72, 56, 1},
	"violet":               {300, 76, 72, 1},
	"wheat":                {39, 77, 83, 1},
	"white":                {0, 0, 100, 1},
	"whitesmoke":           {0, 0, 96, 1},
	"yellow":               {60, 100, 50, 1},
	"yellowgreen":          {80, 61, 50, 1},
}
