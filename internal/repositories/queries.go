package repositories

// Каталог именованных запросов. Динамические части (WHERE по фильтру,
// ORDER BY по allow-list, LIMIT/OFFSET) дособираются репозиториями,
// идентификаторы колонок в запросы никогда не интерполируются из ввода.

const employeeSelectColumns = `e.id, e.full_name, e.email, e.phone_number, e.date_of_birth, e.job_title, e.department, e.salary, e.start_date, e.end_date, e.is_active, e.photo_path, e.created_at, e.updated_at`

// Детальная выборка сотрудника: документы сворачиваются в json-массив
// одной строкой; '[]' — когда документов нет.
const employeeDetailQuery = `
SELECT ` + employeeSelectColumns + `,
       COALESCE(
           json_agg(
               json_build_object(
                   'id', d.id,
                   'document_type', d.document_type,
                   'file_path', d.file_path,
                   'upload_date', to_char(d.upload_date, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
               ) ORDER BY d.id
           ) FILTER (WHERE d.id IS NOT NULL),
           '[]'
       ) AS documents
FROM employees e
LEFT JOIN documents d ON d.employee_id = e.id
WHERE e.id = $1
GROUP BY e.id`

const employeeInsertQuery = `
INSERT INTO employees (full_name, email, phone_number, date_of_birth, job_title, department, salary, start_date, end_date, photo_path)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`

const employeeExistsQuery = `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`

const employeeShortListQuery = `SELECT id, full_name FROM employees ORDER BY full_name`

const documentInsertQuery = `
INSERT INTO documents (employee_id, document_type, file_path, upload_date)
VALUES ($1, $2, $3, NOW())
RETURNING id`

const timesheetSelectBase = `
SELECT t.id, t.employee_id, t.start_time, t.end_time, e.full_name
FROM timesheets t
JOIN employees e ON t.employee_id = e.id`

const timesheetDetailQuery = `
SELECT t.id, t.employee_id, t.start_time, t.end_time, t.summary, t.created_at, t.updated_at, e.full_name
FROM timesheets t
JOIN employees e ON t.employee_id = e.id
WHERE t.id = $1`

// Проверка пересечения полуоткрытых интервалов [s, e):
// существующий пересекается с кандидатом тогда и только тогда, когда
// start_time < конец кандидата И end_time > начало кандидата.
// Стыкующиеся интервалы (end = start) пересечением не считаются.
const timesheetOverlapQuery = `
SELECT id FROM timesheets
WHERE employee_id = $1
  AND start_time < $3
  AND end_time > $2
LIMIT 1`

const timesheetInsertQuery = `
INSERT INTO timesheets (employee_id, start_time, end_time, summary)
VALUES ($1, $2, $3, $4)
RETURNING id`
